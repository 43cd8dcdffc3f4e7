package scanner

import (
	"fmt"
	"strings"

	"github.com/suiet/guardians/internal/guard/domain"
)

// brandRuleKind tags how a brand rule reacts to a host.
type brandRuleKind uint8

const (
	// brandSubdomain allows the canonical domain and anything below it.
	brandSubdomain brandRuleKind = iota
	// brandLookalike blocks hosts that contain the brand token without belonging to the brand.
	brandLookalike
)

func (k brandRuleKind) String() string {
	switch k {
	case brandSubdomain:
		return "subdomain"
	case brandLookalike:
		return "lookalike"
	default:
		return fmt.Sprintf("brandRuleKind(%d)", k)
	}
}

// brandRule is one entry of the brand table compiled for a single pass.
type brandRule struct {
	kind      brandRuleKind
	token     string
	canonical string
	width     int // label count of canonical
}

// compileBrandRules emits every subdomain rule first, then every lookalike
// rule, each group in brand-token order. Evaluating them in sequence yields
// the two independent passes.
func compileBrandRules(bm domain.BrandMap) []brandRule {
	brands := bm.Brands()
	rules := make([]brandRule, 0, 2*len(brands))
	for _, kind := range []brandRuleKind{brandSubdomain, brandLookalike} {
		for _, b := range brands {
			rules = append(rules, brandRule{
				kind:      kind,
				token:     b.Token,
				canonical: b.Domain,
				width:     strings.Count(b.Domain, ".") + 1,
			})
		}
	}
	return rules
}

// eval returns the verdict of r for h, or false when the rule does not fire.
func (r brandRule) eval(h Hostname) (domain.Verdict, bool) {
	switch r.kind {
	case brandSubdomain:
		if h.Tail(r.width) == r.canonical {
			return domain.Verdict{Action: domain.ActionNone, Reason: domain.ReasonBrandSubdomain, Matched: r.canonical}, true
		}
		return domain.Verdict{}, false

	case brandLookalike:
		if !strings.Contains(h.Name, r.token) {
			return domain.Verdict{}, false
		}
		if len(h.Labels) == r.width {
			if h.Name == r.canonical {
				return domain.Verdict{Action: domain.ActionNone, Reason: domain.ReasonBrandSubdomain, Matched: r.canonical}, true
			}
			return domain.Verdict{Action: domain.ActionBlock, Reason: domain.ReasonBrandLookalike, Matched: r.token}, true
		}
		if !strings.HasSuffix(h.Name, "."+r.canonical) {
			return domain.Verdict{Action: domain.ActionBlock, Reason: domain.ReasonBrandLookalike, Matched: r.token}, true
		}
		return domain.Verdict{}, false

	default:
		return domain.Verdict{}, false
	}
}

// matchBrands evaluates rules in order and returns the first verdict.
func matchBrands(rules []brandRule, h Hostname) (domain.Verdict, bool) {
	for _, r := range rules {
		if v, ok := r.eval(h); ok {
			return v, true
		}
	}
	return domain.Verdict{}, false
}
