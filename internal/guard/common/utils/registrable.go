package utils

import (
	"net"

	"golang.org/x/net/publicsuffix"
)

// RegistrableDomain returns the eTLD+1 of a host, e.g. "cetus.zone" for
// "app.deepbook.cetus.zone" or "example.co.uk" for "www.example.co.uk".
// It is empty for IP literals, single-label hosts and names that are
// themselves public suffixes.
func RegistrableDomain(name string) string {
	name = CanonicalDNSName(name)
	if name == "" || net.ParseIP(name) != nil {
		return ""
	}
	apex, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return ""
	}
	return apex
}
