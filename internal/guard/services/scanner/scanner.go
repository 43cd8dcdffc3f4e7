// Package scanner classifies URLs, package addresses, object IDs and coin
// identifiers against published allow/block lists. All functions are pure:
// they read caller-supplied snapshots and keep no state, so they are safe for
// concurrent use.
package scanner

import (
	"github.com/suiet/guardians/internal/guard/common/utils"
	"github.com/suiet/guardians/internal/guard/domain"
)

// Scanner screens domains with a fixed brand table.
type Scanner struct {
	brands domain.BrandMap
	rules  []brandRule
}

// New compiles brands into a Scanner.
func New(brands domain.BrandMap) *Scanner {
	return &Scanner{brands: brands, rules: compileBrandRules(brands)}
}

var defaultScanner = New(domain.DefaultBrandMap())

// Default returns the Scanner built from the compiled-in brand table.
func Default() *Scanner { return defaultScanner }

// Brands returns the brand table the Scanner was built with.
func (s *Scanner) Brands() domain.BrandMap { return s.brands }

// DecideDomain screens rawURL and reports which rule decided. Order:
// allow/block suffix walk, brand subdomain pass, brand lookalike pass, then
// the fail-open default. A nil list is treated as empty. Malformed input
// returns an error wrapping domain.ErrInvalidDomain.
func (s *Scanner) DecideDomain(list *domain.DomainBlocklist, rawURL string) (domain.Verdict, error) {
	h, err := Normalize(rawURL)
	if err != nil {
		return domain.Verdict{}, err
	}
	return s.decideHost(list, h), nil
}

// ScanDomain is DecideDomain reduced to its Action.
func (s *Scanner) ScanDomain(list *domain.DomainBlocklist, rawURL string) (domain.Action, error) {
	v, err := s.DecideDomain(list, rawURL)
	if err != nil {
		return domain.ActionNone, err
	}
	return v.Action, nil
}

// DecideHost screens an already normalized host.
func (s *Scanner) DecideHost(list *domain.DomainBlocklist, h Hostname) domain.Verdict {
	return s.decideHost(list, h)
}

func (s *Scanner) decideHost(list *domain.DomainBlocklist, h Hostname) domain.Verdict {
	v, ok := matchLists(list, h)
	if !ok {
		v, ok = matchBrands(s.rules, h)
	}
	if !ok {
		v = domain.DefaultVerdict()
	}
	v.Host = h.Name
	v.Apex = utils.RegistrableDomain(h.Name)
	return v
}

// DecideDomain screens rawURL with the default brand table.
func DecideDomain(list *domain.DomainBlocklist, rawURL string) (domain.Verdict, error) {
	return defaultScanner.DecideDomain(list, rawURL)
}

// ScanDomain screens rawURL with the default brand table.
func ScanDomain(list *domain.DomainBlocklist, rawURL string) (domain.Action, error) {
	return defaultScanner.ScanDomain(list, rawURL)
}
