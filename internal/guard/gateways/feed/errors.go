package feed

import (
	"errors"
	"fmt"
)

// ErrMalformedList is wrapped by every decoding failure: invalid JSON, an
// unexpected document shape, non-string entries or an oversized body.
var ErrMalformedList = errors.New("malformed list document")

// StatusError reports a non-2xx response. Body holds the (truncated) response text.
type StatusError struct {
	URL        string // scheme and host only
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// ErrorFunc receives fetch failures. It may be nil.
type ErrorFunc func(err error)

func (f ErrorFunc) report(err error) {
	if f != nil {
		f(err)
	}
}
