package domain

// DomainBlocklist is the published phishing-domain list. Entries are exact
// registrable-or-deeper domains, stored canonical (lowercase, no trailing dot).
type DomainBlocklist struct {
	Allowlist IdentifierSet
	Blocklist IdentifierSet
}

// NewDomainBlocklist canonicalizes both collections into sets.
func NewDomainBlocklist(allow, block []string) *DomainBlocklist {
	return &DomainBlocklist{
		Allowlist: NewDomainSet(allow),
		Blocklist: NewDomainSet(block),
	}
}

// Merge returns a new list with the entries of extra added to both sides.
func (l *DomainBlocklist) Merge(extra *DomainBlocklist) *DomainBlocklist {
	if extra == nil {
		return l
	}
	if l == nil {
		return extra
	}
	return &DomainBlocklist{
		Allowlist: l.Allowlist.Union(extra.Allowlist),
		Blocklist: l.Blocklist.Union(extra.Blocklist),
	}
}

// PackageBlocklist holds malicious on-chain package addresses.
type PackageBlocklist struct {
	Blocklist IdentifierSet
}

// NewPackageBlocklist keeps addresses verbatim.
func NewPackageBlocklist(block []string) *PackageBlocklist {
	return &PackageBlocklist{Blocklist: NewIdentifierSet(block)}
}

// ObjectBlocklist holds object identifiers; the allowlist takes precedence.
type ObjectBlocklist struct {
	Allowlist IdentifierSet
	Blocklist IdentifierSet
}

// NewObjectBlocklist keeps object IDs verbatim.
func NewObjectBlocklist(allow, block []string) *ObjectBlocklist {
	return &ObjectBlocklist{
		Allowlist: NewIdentifierSet(allow),
		Blocklist: NewIdentifierSet(block),
	}
}

// CoinBlocklist holds scam coin type identifiers.
type CoinBlocklist struct {
	Blocklist IdentifierSet
}

// NewCoinBlocklist keeps coin identifiers verbatim.
func NewCoinBlocklist(block []string) *CoinBlocklist {
	return &CoinBlocklist{Blocklist: NewIdentifierSet(block)}
}
