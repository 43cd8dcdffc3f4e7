package domain

import "testing"

func TestAction_String(t *testing.T) {
	cases := []struct {
		a    Action
		want string
	}{
		{ActionNone, "NONE"},
		{ActionBlock, "BLOCK"},
		{Action(9), "Action(9)"},
	}
	for _, tc := range cases {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, want %q", tc.a, got, tc.want)
		}
	}
}

func TestListKind_RoundTrip(t *testing.T) {
	for _, k := range AllKinds {
		got, err := ParseListKind(k.String())
		if err != nil {
			t.Fatalf("ParseListKind(%q) unexpected error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseListKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseListKind("token"); err == nil {
		t.Errorf("expected error for unknown kind")
	}
	if got := ListKind(42).String(); got != "ListKind(42)" {
		t.Errorf("String() = %q", got)
	}
}
