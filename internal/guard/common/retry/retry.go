// Package retry re-runs failing actions a bounded number of times.
package retry

import (
	"context"
	"errors"
)

// DefaultTimes is the number of retries used when callers have no preference.
const DefaultTimes = 3

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying. Do returns the wrapped error
// as soon as it sees it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

// Do runs action and, while it fails, retries it up to times more times with
// no delay in between. The error of the last attempt is returned once retries
// are exhausted. A cancelled ctx stops retrying and returns ctx.Err().
func Do[T any](ctx context.Context, times int, action func(ctx context.Context) (T, error)) (T, error) {
	if times < 0 {
		times = 0
	}
	var (
		zero T
		err  error
	)
	for attempt := 0; attempt <= times; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		var v T
		v, err = action(ctx)
		if err == nil {
			return v, nil
		}
		var p permanent
		if errors.As(err, &p) {
			return zero, p.err
		}
	}
	return zero, err
}
