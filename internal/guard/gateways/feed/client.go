// Package feed is the network boundary for the published lists. Every Fetch
// method returns nil on failure and hands the failure to an optional
// ErrorFunc; no error ever crosses the boundary.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/common/retry"
	"github.com/suiet/guardians/internal/guard/domain"
)

const (
	DefaultDomainURL  = "https://raw.githubusercontent.com/suiet/guardians/main/dist/domain-list.json"
	DefaultPackageURL = "https://raw.githubusercontent.com/suiet/guardians/main/dist/package-list.json"
	DefaultObjectURL  = "https://raw.githubusercontent.com/suiet/guardians/main/dist/object-list.json"
	DefaultCoinURL    = "https://raw.githubusercontent.com/suiet/guardians/main/dist/coin-list.json"

	DefaultTimeout = 30 * time.Second

	maxBodySize  = 32 << 20 // 32 MiB
	maxErrorBody = 4 << 10
)

// Options configures a Client. Empty URLs fall back to the defaults.
type Options struct {
	DomainURL  string
	PackageURL string
	ObjectURL  string
	CoinURL    string

	// Retries is the number of extra attempts after a transport error or 5xx response.
	Retries int
	// Timeout bounds every single attempt.
	Timeout time.Duration
	// HTTPClient overrides the underlying client; its Timeout is left untouched.
	HTTPClient *http.Client
	Logger     log.Logger
}

// DefaultOptions returns the published URLs with the default retry count.
func DefaultOptions() Options {
	return Options{
		DomainURL:  DefaultDomainURL,
		PackageURL: DefaultPackageURL,
		ObjectURL:  DefaultObjectURL,
		CoinURL:    DefaultCoinURL,
		Retries:    retry.DefaultTimes,
		Timeout:    DefaultTimeout,
	}
}

// Client fetches and decodes the four lists.
type Client struct {
	urls   map[domain.ListKind]string
	http   *retryablehttp.Client
	logger log.Logger
}

// New builds a Client.
func New(opts Options) *Client {
	def := DefaultOptions()
	if opts.DomainURL == "" {
		opts.DomainURL = def.DomainURL
	}
	if opts.PackageURL == "" {
		opts.PackageURL = def.PackageURL
	}
	if opts.ObjectURL == "" {
		opts.ObjectURL = def.ObjectURL
	}
	if opts.CoinURL == "" {
		opts.CoinURL = def.CoinURL
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	logger := log.OrNoop(opts.Logger)

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.Retries
	rc.Backoff = func(_, _ time.Duration, _ int, _ *http.Response) time.Duration { return 0 }
	rc.CheckRetry = retryablehttp.DefaultRetryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{logger}
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	} else {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	return &Client{
		urls: map[domain.ListKind]string{
			domain.KindDomain:  opts.DomainURL,
			domain.KindPackage: opts.PackageURL,
			domain.KindObject:  opts.ObjectURL,
			domain.KindCoin:    opts.CoinURL,
		},
		http:   rc,
		logger: logger,
	}
}

// URL returns the endpoint used for kind.
func (c *Client) URL(kind domain.ListKind) string { return c.urls[kind] }

// FetchDomainBlocklist downloads the phishing-domain list.
func (c *Client) FetchDomainBlocklist(ctx context.Context, onError ErrorFunc) *domain.DomainBlocklist {
	doc, ok := c.fetch(ctx, domain.KindDomain, decodeDualList, onError)
	if !ok {
		return nil
	}
	return doc.domainList()
}

// FetchPackageBlocklist downloads the malicious package list.
func (c *Client) FetchPackageBlocklist(ctx context.Context, onError ErrorFunc) *domain.PackageBlocklist {
	doc, ok := c.fetch(ctx, domain.KindPackage, decodeBlockList, onError)
	if !ok {
		return nil
	}
	return doc.packageList()
}

// FetchObjectBlocklist downloads the object list.
func (c *Client) FetchObjectBlocklist(ctx context.Context, onError ErrorFunc) *domain.ObjectBlocklist {
	doc, ok := c.fetch(ctx, domain.KindObject, decodeDualList, onError)
	if !ok {
		return nil
	}
	return doc.objectList()
}

// FetchCoinBlocklist downloads the scam coin list.
func (c *Client) FetchCoinBlocklist(ctx context.Context, onError ErrorFunc) *domain.CoinBlocklist {
	doc, ok := c.fetch(ctx, domain.KindCoin, decodeBlockList, onError)
	if !ok {
		return nil
	}
	return doc.coinList()
}

func (c *Client) fetch(ctx context.Context, kind domain.ListKind, decode func([]byte) (document, error), onError ErrorFunc) (document, bool) {
	rawURL := c.urls[kind]
	fields := map[string]any{"list": kind.String(), "url": SanitizeURL(rawURL)}

	body, err := c.get(ctx, rawURL)
	if err == nil {
		var doc document
		doc, err = decode(body)
		if err == nil {
			fields["allow"] = len(doc.allow)
			fields["block"] = len(doc.block)
			c.logger.Debug(fields, "list fetched")
			return doc, true
		}
	}

	fields["error"] = err.Error()
	c.logger.Warn(fields, "list fetch failed")
	onError.report(fmt.Errorf("fetch %s list: %w", kind, err))
	return document{}, false
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{URL: SanitizeURL(rawURL), StatusCode: resp.StatusCode, Body: string(text)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedList, maxBodySize)
	}
	return body, nil
}

// SanitizeURL keeps only scheme and host, dropping paths, queries and credentials.
func SanitizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "<invalid-url>"
	}
	return u.Scheme + "://" + u.Host
}

var defaultClient = New(DefaultOptions())

// FetchDomainBlocklist downloads the domain list from the published URL.
func FetchDomainBlocklist(ctx context.Context, onError ErrorFunc) *domain.DomainBlocklist {
	return defaultClient.FetchDomainBlocklist(ctx, onError)
}

// FetchPackageBlocklist downloads the package list from the published URL.
func FetchPackageBlocklist(ctx context.Context, onError ErrorFunc) *domain.PackageBlocklist {
	return defaultClient.FetchPackageBlocklist(ctx, onError)
}

// FetchObjectBlocklist downloads the object list from the published URL.
func FetchObjectBlocklist(ctx context.Context, onError ErrorFunc) *domain.ObjectBlocklist {
	return defaultClient.FetchObjectBlocklist(ctx, onError)
}

// FetchCoinBlocklist downloads the coin list from the published URL.
func FetchCoinBlocklist(ctx context.Context, onError ErrorFunc) *domain.CoinBlocklist {
	return defaultClient.FetchCoinBlocklist(ctx, onError)
}
