package workqueue

import (
	"time"

	"github.com/kart-io/workqueue/retry"
)

// config holds everything a Queue is constructed with. Mirrors
// kart-io-notifyhub/config/options.go's functional-option pattern:
// an Option applies itself to a private config struct at New time.
type config[T any] struct {
	policy       retry.Policy
	visibility   time.Duration
	metrics      Metrics
	gaugeName    string
	serializer   Serializer[T]
	eventHandler EventHandler[T]
	logger       Logger
	clock        func() time.Time
}

func defaultConfig[T any]() config[T] {
	return config[T]{
		policy:       retry.Default(),
		visibility:   10 * time.Minute,
		metrics:      noopMetrics{},
		eventHandler: noopEventHandler[T]{},
		logger:       DiscardLogger,
		clock:        time.Now,
	}
}

// Option configures a Queue at construction time.
type Option[T any] interface {
	apply(*config[T])
}

type optionFunc[T any] func(*config[T])

func (f optionFunc[T]) apply(c *config[T]) { f(c) }

// WithRetryLimit sets R, the maximum number of abandons before an entry
// is dead-lettered. R = 0 disables retries. Default: 2.
func WithRetryLimit[T any](r int) Option[T] {
	return optionFunc[T](func(c *config[T]) { c.policy.Limit = r })
}

// WithBaseDelay sets D, the retry base delay. D = 0 causes immediate
// re-enqueue on abandon. Default: 1 minute.
func WithBaseDelay[T any](d time.Duration) Option[T] {
	return optionFunc[T](func(c *config[T]) { c.policy.BaseDelay = d })
}

// WithMultiplierSchedule sets M[1..k], the retry multiplier table.
// Default: [1, 3, 5, 10].
func WithMultiplierSchedule[T any](m []int) Option[T] {
	return optionFunc[T](func(c *config[T]) { c.policy.Multipliers = append([]int(nil), m...) })
}

// WithVisibilityTimeout sets V, the window a consumer has to complete or
// abandon a dequeued entry before maintenance reclaims it automatically.
// Default: 10 minutes.
func WithVisibilityTimeout[T any](v time.Duration) Option[T] {
	return optionFunc[T](func(c *config[T]) { c.visibility = v })
}

// WithMetrics installs a Metrics sink and the gauge name reported to it.
// A "" name disables reporting even with a Metrics configured.
func WithMetrics[T any](m Metrics, gaugeName string) Option[T] {
	return optionFunc[T](func(c *config[T]) {
		if m == nil {
			m = noopMetrics{}
		}
		c.metrics = m
		c.gaugeName = gaugeName
	})
}

// WithSerializer installs a Serializer used to deep-copy reference-typed
// payloads on enqueue and dequeue. Value-typed payloads don't need one.
func WithSerializer[T any](s Serializer[T]) Option[T] {
	return optionFunc[T](func(c *config[T]) { c.serializer = s })
}

// WithEventHandler installs an EventHandler. Passing nil reverts to the
// no-op handler.
func WithEventHandler[T any](h EventHandler[T]) Option[T] {
	return optionFunc[T](func(c *config[T]) {
		if h == nil {
			h = noopEventHandler[T]{}
		}
		c.eventHandler = h
	})
}

// WithLogger installs a Logger. Passing nil reverts to DiscardLogger.
func WithLogger[T any](l Logger) Option[T] {
	return optionFunc[T](func(c *config[T]) {
		if l == nil {
			l = DiscardLogger
		}
		c.logger = l
	})
}

// WithClock overrides the queue's notion of "now": the time stamped into
// DequeuedAt and the base from which maintenance deadlines and retry
// fire times are computed. The timers themselves still run on real
// time, so a custom clock does not remove real waits.
func WithClock[T any](now func() time.Time) Option[T] {
	return optionFunc[T](func(c *config[T]) {
		if now != nil {
			c.clock = now
		}
	})
}
