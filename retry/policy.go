// Package retry implements the queue's fixed backoff schedule: a retry
// limit R, a base delay D, and a 1-indexed multiplier table M, combined
// as delay = D * M[min(attempts, len(M))].
//
// This is grounded on kart-io-notifyhub/queue/retry/policy.go's
// RetryPolicy, but that type compounds a single Multiplier on every
// attempt (interval *= Multiplier in a loop); spec.md instead names a
// fixed per-attempt multiplier table, which can't be expressed as a
// compounding float, so Policy indexes a table directly.
package retry

import "time"

// DefaultMultipliers is spec.md §6's default retry multiplier schedule.
var DefaultMultipliers = []int{1, 3, 5, 10}

// Policy computes the retry backoff schedule and the exhaustion point.
type Policy struct {
	// Limit is R: the maximum number of abandons before an entry is
	// dead-lettered. R = 0 disables retries.
	Limit int
	// BaseDelay is D. D = 0 causes an abandoned entry to be re-enqueued
	// immediately.
	BaseDelay time.Duration
	// Multipliers is M[1..k], k >= 1, all positive. 1-indexed against
	// the entry's attempt count.
	Multipliers []int
}

// Default returns the spec.md §6 default policy: R=2, D=1m,
// M=[1,3,5,10].
func Default() Policy {
	return Policy{
		Limit:       2,
		BaseDelay:   time.Minute,
		Multipliers: DefaultMultipliers,
	}
}

// Exhausted reports whether an entry with this many attempts has used up
// its retry budget (attempts >= R+1).
func (p Policy) Exhausted(attempts int) bool {
	return attempts >= p.Limit+1
}

// Delay returns the backoff delay to apply before the entry with this
// many attempts becomes ready again. Only meaningful when !Exhausted.
func (p Policy) Delay(attempts int) time.Duration {
	k := len(p.Multipliers)
	if k == 0 {
		return p.BaseDelay
	}
	idx := attempts
	if idx < 1 {
		idx = 1
	}
	if idx > k {
		idx = k
	}
	return p.BaseDelay * time.Duration(p.Multipliers[idx-1])
}
