package utils

import "strings"

// CanonicalDNSName lowercases name and drops surrounding spaces and any
// trailing root dots, so "Cetus.Zone." and "cetus.zone" compare equal.
func CanonicalDNSName(name string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(name)), ".")
}
