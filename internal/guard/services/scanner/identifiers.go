package scanner

import "github.com/suiet/guardians/internal/guard/domain"

// Identifiers are compared verbatim: no normalization, no hierarchy.

func blocked(matched string) domain.Verdict {
	return domain.Verdict{Action: domain.ActionBlock, Reason: domain.ReasonBlocklist, Matched: matched}
}

// DecidePackage blocks address iff it is listed.
func DecidePackage(list *domain.PackageBlocklist, address string) domain.Verdict {
	if list != nil && list.Blocklist.Has(address) {
		return blocked(address)
	}
	return domain.DefaultVerdict()
}

// ScanPackage is DecidePackage reduced to its Action.
func ScanPackage(list *domain.PackageBlocklist, address string) domain.Action {
	return DecidePackage(list, address).Action
}

// DecideObject allows listed-allowed objects first, then blocks listed-blocked ones.
func DecideObject(list *domain.ObjectBlocklist, object string) domain.Verdict {
	if list == nil {
		return domain.DefaultVerdict()
	}
	if list.Allowlist.Has(object) {
		return domain.Verdict{Action: domain.ActionNone, Reason: domain.ReasonAllowlist, Matched: object}
	}
	if list.Blocklist.Has(object) {
		return blocked(object)
	}
	return domain.DefaultVerdict()
}

// ScanObject is DecideObject reduced to its Action.
func ScanObject(list *domain.ObjectBlocklist, object string) domain.Action {
	return DecideObject(list, object).Action
}

// DecideCoin blocks coin iff it is listed.
func DecideCoin(list *domain.CoinBlocklist, coin string) domain.Verdict {
	if list != nil && list.Blocklist.Has(coin) {
		return blocked(coin)
	}
	return domain.DefaultVerdict()
}

// ScanCoin is DecideCoin reduced to its Action.
func ScanCoin(list *domain.CoinBlocklist, coin string) domain.Action {
	return DecideCoin(list, coin).Action
}
