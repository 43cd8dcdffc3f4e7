package scanner

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/suiet/guardians/internal/guard/common/utils"
	"github.com/suiet/guardians/internal/guard/domain"
)

// Hostname is a normalized host and its labels, most-specific first.
type Hostname struct {
	Name   string   // lowercase ASCII host, no trailing dot, e.g. "www.example.com"
	Labels []string // ["www", "example", "com"]
}

// hostProfile converts Unicode hosts the way browsers do: UTS #46 mapping
// without the STD3 and hyphen-position checks.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.CheckHyphens(false),
	idna.StrictDomainName(false),
)

// Normalize turns a bare hostname ("example.com") or a full URL
// ("https://example.com/path") into a canonical Hostname. Inputs whose
// lowercase form starts with "http" are parsed as URLs as-is; anything else
// gets an "https://" scheme synthesized first. http(s) input is read with
// browser leniency, see browserForm. Every failure wraps
// domain.ErrInvalidDomain.
func Normalize(raw string) (Hostname, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Hostname{}, fmt.Errorf("%w: empty input", domain.ErrInvalidDomain)
	}

	target := raw
	if !strings.HasPrefix(strings.ToLower(raw), "http") {
		target = "https://" + raw
	}

	u, err := url.Parse(browserForm(target))
	if err != nil {
		return Hostname{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidDomain, raw, err)
	}

	host := u.Hostname()
	if host == "" {
		return Hostname{}, fmt.Errorf("%w: %q has no host", domain.ErrInvalidDomain, raw)
	}

	// Unicode hosts are compared in their punycode form, like a browser URL parser does.
	if !isASCII(host) {
		host, err = hostProfile.ToASCII(host)
		if err != nil {
			return Hostname{}, fmt.Errorf("%w: %q: idna: %v", domain.ErrInvalidDomain, raw, err)
		}
	}

	name := utils.CanonicalDNSName(host)
	if name == "" {
		return Hostname{}, fmt.Errorf("%w: %q has no host", domain.ErrInvalidDomain, raw)
	}

	return Hostname{Name: name, Labels: strings.Split(name, ".")}, nil
}

// browserForm rewrites an http(s) URL into the shape a browser parses it as.
// ASCII tab and newlines are dropped and backslashes become slashes. Any run
// of slashes after "scheme:" then introduces the host. Other input is
// returned unchanged.
func browserForm(target string) string {
	scheme, rest, ok := strings.Cut(target, ":")
	if !ok {
		return target
	}
	if s := strings.ToLower(scheme); s != "http" && s != "https" {
		return target
	}
	rest = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return -1
		case '\\':
			return '/'
		}
		return r
	}, rest)
	return scheme + "://" + strings.TrimLeft(rest, "/")
}

// Suffix joins the labels from index i onwards.
func (h Hostname) Suffix(i int) string {
	return strings.Join(h.Labels[i:], ".")
}

// Tail joins the last n labels. When the host has fewer than n labels the whole name is returned.
func (h Hostname) Tail(n int) string {
	if n >= len(h.Labels) {
		return h.Name
	}
	return h.Suffix(len(h.Labels) - n)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
