package domain

import (
	"sort"

	"github.com/suiet/guardians/internal/guard/common/utils"
)

// IdentifierSet is an immutable set of exact strings. Treat it as read-only
// once constructed; scans share it across goroutines without locking.
type IdentifierSet map[string]struct{}

// NewIdentifierSet builds a set from items, compared verbatim. Empty strings are dropped.
func NewIdentifierSet(items []string) IdentifierSet {
	s := make(IdentifierSet, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		s[it] = struct{}{}
	}
	return s
}

// NewDomainSet builds a set of canonical domain names (lowercase, no trailing dot).
func NewDomainSet(names []string) IdentifierSet {
	s := make(IdentifierSet, len(names))
	for _, n := range names {
		cn := utils.CanonicalDNSName(n)
		if cn == "" {
			continue
		}
		s[cn] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set contains nothing.
func (s IdentifierSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of entries.
func (s IdentifierSet) Len() int { return len(s) }

// Slice returns the entries sorted, for persistence and stable output.
func (s IdentifierSet) Slice() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set holding the entries of s and other.
func (s IdentifierSet) Union(other IdentifierSet) IdentifierSet {
	out := make(IdentifierSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}
