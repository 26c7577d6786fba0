// Package chanrate layers an optional, opt-in write-rate limit on top of
// frost's channels. It is never imported by the core frost package: the
// default channel write semantics (fixed-capacity refusal, spec.md's
// Non-goals exclude flow control beyond that) are unchanged. Embedders that
// want to additionally throttle how often a given task may write reach for
// this package themselves.
package chanrate

import (
	"time"

	"github.com/TheSnowfield/frost"
	catrate "github.com/joeycumines/go-catrate"
)

// WriteLimiter wraps a catrate.Limiter, keyed by task.
type WriteLimiter struct {
	limiter *catrate.Limiter
}

// NewWriteLimiter constructs a WriteLimiter enforcing rates (window
// duration -> max event count per window), shared across every task
// checked against it. See catrate.NewLimiter for the rate-map contract
// (durations must be positive, counts monotonic with window size).
func NewWriteLimiter(rates map[time.Duration]int) *WriteLimiter {
	return &WriteLimiter{limiter: catrate.NewLimiter(rates)}
}

// Allow reports, in its second return, whether t may write now, given the
// configured rates. On false, the first return is the earliest time a write
// would be allowed.
func (w *WriteLimiter) Allow(t *frost.Task) (time.Time, bool) {
	return w.limiter.Allow(t)
}
