package domain

import "errors"

// ErrInvalidDomain reports a scan input that cannot be parsed as a URL or
// hostname, even after a scheme has been synthesized. It is a caller contract
// violation and is never turned into a scan outcome.
var ErrInvalidDomain = errors.New("invalid domain")
