package scanner

import "github.com/suiet/guardians/internal/guard/domain"

// matchLists walks every suffix of h that keeps at least two labels, from the
// full host towards the apex, and stops at the first list hit. At each suffix
// the allowlist is consulted before the blocklist. The single top-level label
// is never tested on its own.
func matchLists(list *domain.DomainBlocklist, h Hostname) (domain.Verdict, bool) {
	if list == nil {
		return domain.Verdict{}, false
	}
	for i := 0; i < len(h.Labels)-1; i++ {
		candidate := h.Suffix(i)
		if list.Allowlist.Has(candidate) {
			return domain.Verdict{Action: domain.ActionNone, Reason: domain.ReasonAllowlist, Matched: candidate}, true
		}
		if list.Blocklist.Has(candidate) {
			return domain.Verdict{Action: domain.ActionBlock, Reason: domain.ReasonBlocklist, Matched: candidate}, true
		}
	}
	return domain.Verdict{}, false
}
