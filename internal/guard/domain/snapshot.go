package domain

import "time"

// Snapshot is the set of lists a caller scans against. Any list may be nil
// when it was never obtained. Snapshots are replaced, never mutated.
type Snapshot struct {
	Domains   *DomainBlocklist
	Packages  *PackageBlocklist
	Objects   *ObjectBlocklist
	Coins     *CoinBlocklist
	Version   uint64
	UpdatedAt time.Time
}

// Has reports whether the list of the given kind is present.
func (s *Snapshot) Has(kind ListKind) bool {
	if s == nil {
		return false
	}
	switch kind {
	case KindDomain:
		return s.Domains != nil
	case KindPackage:
		return s.Packages != nil
	case KindObject:
		return s.Objects != nil
	case KindCoin:
		return s.Coins != nil
	default:
		return false
	}
}

// Empty reports whether no list is present.
func (s *Snapshot) Empty() bool {
	for _, k := range AllKinds {
		if s.Has(k) {
			return false
		}
	}
	return true
}
