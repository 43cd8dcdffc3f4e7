package utils

import (
	"strings"
	"testing"
)

func TestCanonicalDNSName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple domain", "example.com", "example.com"},
		{"trailing dot", "example.com.", "example.com"},
		{"multiple trailing dots", "example.com..", "example.com"},
		{"uppercase", "EXAMPLE.COM", "example.com"},
		{"mixed case with whitespace", "  WwW.ExAmPlE.CoM.  ", "www.example.com"},
		{"tabs", "\t example.com \t", "example.com"},
		{"root", ".", ""},
		{"empty", "", ""},
		{"whitespace only", " \n \t ", ""},
		{"single label", " LOCALHOST ", "localhost"},
		{"punycode", "xn--nxasmq6b.xn--j6w193g", "xn--nxasmq6b.xn--j6w193g"},
		{"hyphens and digits", "Scam-Cetus1.zone", "scam-cetus1.zone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalDNSName(tt.input)
			if got != tt.expected {
				t.Errorf("CanonicalDNSName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalDNSName_Properties(t *testing.T) {
	inputs := []string{"example.com", "EXAMPLE.COM.", "  www.example.com  ", "localhost", "."}

	t.Run("idempotent", func(t *testing.T) {
		for _, in := range inputs {
			first := CanonicalDNSName(in)
			if second := CanonicalDNSName(first); first != second {
				t.Errorf("not idempotent for %q: %q vs %q", in, first, second)
			}
		}
	})

	t.Run("lowercase without trailing dot", func(t *testing.T) {
		for _, in := range inputs {
			got := CanonicalDNSName(in)
			if got != strings.ToLower(got) || strings.HasSuffix(got, ".") {
				t.Errorf("CanonicalDNSName(%q) = %q", in, got)
			}
		}
	})
}
