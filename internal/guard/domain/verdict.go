package domain

// Reason names the rule that produced a Verdict.
type Reason string

const (
	ReasonAllowlist      Reason = "allowlist"       // a suffix of the host is allow-listed
	ReasonBlocklist      Reason = "blocklist"       // a suffix of the host (or the identifier) is block-listed
	ReasonBrandSubdomain Reason = "brand-subdomain" // host is a brand's canonical domain or a subdomain of it
	ReasonBrandLookalike Reason = "brand-lookalike" // host contains a brand token without belonging to the brand
	ReasonDefault        Reason = "default"         // no rule fired; fail-open
	ReasonUnavailable    Reason = "unavailable"     // no list snapshot was ever obtained; scan skipped
)

// Verdict is the outcome of screening one input together with the rule that fired.
// Pure value type.
type Verdict struct {
	Action  Action
	Reason  Reason
	Matched string // list entry, canonical brand domain or brand token that matched
	Host    string // normalized hostname (domain scans only)
	Apex    string // registrable domain of Host, empty when there is none
}

// IsBlocked is a convenience accessor.
func (v Verdict) IsBlocked() bool { return v.Action == ActionBlock }

// DefaultVerdict returns the fail-open verdict.
func DefaultVerdict() Verdict { return Verdict{Action: ActionNone, Reason: ReasonDefault} }
