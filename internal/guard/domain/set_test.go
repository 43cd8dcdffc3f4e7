package domain

import (
	"reflect"
	"testing"
)

func TestNewDomainSet_Canonicalizes(t *testing.T) {
	s := NewDomainSet([]string{"Vercel.COM", " app1.vercel.com. ", "", "  "})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	for _, name := range []string{"vercel.com", "app1.vercel.com"} {
		if !s.Has(name) {
			t.Errorf("expected set to contain %q", name)
		}
	}
}

func TestNewIdentifierSet_Verbatim(t *testing.T) {
	s := NewIdentifierSet([]string{"0xABC", "0xabc", ""})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("0xABC") || !s.Has("0xabc") {
		t.Errorf("identifiers must be kept verbatim")
	}
}

func TestIdentifierSet_NilHas(t *testing.T) {
	var s IdentifierSet
	if s.Has("anything") {
		t.Errorf("nil set must contain nothing")
	}
}

func TestIdentifierSet_SliceAndUnion(t *testing.T) {
	a := NewIdentifierSet([]string{"b", "a"})
	b := NewIdentifierSet([]string{"c", "a"})
	got := a.Union(b).Slice()
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Union().Slice() = %v, want %v", got, want)
	}
	if a.Len() != 2 {
		t.Errorf("Union must not mutate the receiver")
	}
}

func TestDomainBlocklist_Merge(t *testing.T) {
	base := NewDomainBlocklist([]string{"good.com"}, []string{"bad.com"})
	extra := NewDomainBlocklist(nil, []string{"worse.com"})

	merged := base.Merge(extra)
	if !merged.Allowlist.Has("good.com") || !merged.Blocklist.Has("bad.com") || !merged.Blocklist.Has("worse.com") {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if base.Blocklist.Has("worse.com") {
		t.Errorf("Merge must not mutate the receiver")
	}

	if got := base.Merge(nil); got != base {
		t.Errorf("Merge(nil) should return the receiver")
	}
	var empty *DomainBlocklist
	if got := empty.Merge(extra); got != extra {
		t.Errorf("nil.Merge(extra) should return extra")
	}
}

func TestSnapshot_Has(t *testing.T) {
	var nilSnap *Snapshot
	if nilSnap.Has(KindDomain) || !nilSnap.Empty() {
		t.Fatalf("nil snapshot must be empty")
	}
	s := &Snapshot{Coins: NewCoinBlocklist([]string{"0x2::sui::FAKE"})}
	if !s.Has(KindCoin) || s.Has(KindDomain) || s.Empty() {
		t.Fatalf("unexpected Has/Empty for %+v", s)
	}
}
