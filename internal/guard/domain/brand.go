package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Brand pairs a short brand token with the brand's canonical domain.
type Brand struct {
	Token  string // lowercase substring searched for in queried hosts, e.g. "cetus"
	Domain string // canonical domain, e.g. "cetus.zone"
}

// BrandMap is an immutable, token-ordered table of known brands. It is used
// only to recognise impersonation attempts.
type BrandMap struct {
	brands []Brand
}

// defaultBrands is the compiled-in table.
var defaultBrands = map[string]string{
	"cetus":     "cetus.zone",
	"scallop":   "scallop.io",
	"navi":      "naviprotocol.io",
	"navx":      "naviprotocol.io",
	"suilend":   "suilend.fi",
	"bucket":    "bucketprotocol.io",
	"turbos":    "turbos.finance",
	"flowx":     "flowx.finance",
	"kriya":     "kriya.finance",
	"typus":     "typus.finance",
	"aftermath": "aftermath.finance",
	"bluefin":   "bluefin.io",
	"haedal":    "haedal.xyz",
	"volo":      "volosui.com",
	"volo.fi":   "volo.fi", // redirects to volosui.com
	"alphafi":   "alphafi.xyz",
	"deepbook":  "deepbook.tech",
	"suins":     "suins.io",
	"suilink":   "suilink.io",
	"sui":       "sui.io",
}

// DefaultBrandMap returns the compiled-in brand table.
func DefaultBrandMap() BrandMap {
	bm, err := NewBrandMap(defaultBrands)
	if err != nil {
		panic(fmt.Sprintf("default brand map is invalid: %v", err))
	}
	return bm
}

// NewBrandMap validates entries and builds a BrandMap. Tokens and domains are
// lowercased; every domain must be a syntactically valid ASCII hostname.
func NewBrandMap(entries map[string]string) (BrandMap, error) {
	brands := make([]Brand, 0, len(entries))
	for token, dom := range entries {
		b := Brand{
			Token:  strings.ToLower(strings.TrimSpace(token)),
			Domain: strings.ToLower(strings.TrimSpace(dom)),
		}
		if err := b.Validate(); err != nil {
			return BrandMap{}, err
		}
		brands = append(brands, b)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Token < brands[j].Token })
	return BrandMap{brands: brands}, nil
}

// Validate checks the token and canonical domain of a brand entry.
func (b Brand) Validate() error {
	if b.Token == "" {
		return fmt.Errorf("brand token must not be empty")
	}
	if strings.ContainsAny(b.Token, " \t/:") {
		return fmt.Errorf("brand token %q contains invalid characters", b.Token)
	}
	if b.Domain == "" {
		return fmt.Errorf("brand %q: domain must not be empty", b.Token)
	}
	if strings.Contains(b.Domain, "://") {
		return fmt.Errorf("brand %q: domain %q must not carry a scheme", b.Token, b.Domain)
	}
	for _, label := range strings.Split(b.Domain, ".") {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("brand %q: domain %q has an invalid label", b.Token, b.Domain)
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				return fmt.Errorf("brand %q: domain %q is not an ASCII hostname", b.Token, b.Domain)
			}
		}
	}
	return nil
}

// Brands returns a copy of the entries in token order.
func (m BrandMap) Brands() []Brand {
	out := make([]Brand, len(m.brands))
	copy(out, m.brands)
	return out
}

// Len returns the number of brands.
func (m BrandMap) Len() int { return len(m.brands) }

// Lookup returns the canonical domain for token.
func (m BrandMap) Lookup(token string) (string, bool) {
	token = strings.ToLower(token)
	for _, b := range m.brands {
		if b.Token == token {
			return b.Domain, true
		}
	}
	return "", false
}
