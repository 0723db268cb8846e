package workqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// S1 — basic FIFO-ish round trip.
func TestBasicRoundTrip(t *testing.T) {
	q := New[string]("s1", WithRetryLimit[string](2), WithBaseDelay[string](0), WithVisibilityTimeout[string](time.Second))

	seen := map[string]bool{}
	for _, p := range []string{"A", "B", "C"} {
		id, ok := q.Enqueue(p)
		assert.True(t, ok)
		assert.NotEmpty(t, id)
	}

	for i := 0; i < 3; i++ {
		e, ok := q.Dequeue(0)
		assert.True(t, ok)
		seen[e.Payload] = true
		q.Complete(e.ID)
	}

	assert.Len(t, seen, 3)
	assert.EqualValues(t, 3, q.EnqueuedCount())
	assert.EqualValues(t, 3, q.DequeuedCount())
	assert.EqualValues(t, 3, q.CompletedCount())
	assert.EqualValues(t, 0, q.AbandonedCount())
	assert.Equal(t, 0, q.DeadLetterCount())
}

// S2 — retry then success.
func TestRetryThenSuccess(t *testing.T) {
	q := New[string]("s2", WithRetryLimit[string](2), WithBaseDelay[string](0), WithVisibilityTimeout[string](60*time.Second))

	id, _ := q.Enqueue("X")

	e, ok := q.Dequeue(0)
	assert.True(t, ok)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, 1, e.Attempts)
	q.Abandon(e.ID)

	e, ok = q.Dequeue(0)
	assert.True(t, ok)
	assert.Equal(t, 2, e.Attempts)
	q.Abandon(e.ID)

	e, ok = q.Dequeue(0)
	assert.True(t, ok)
	assert.Equal(t, 3, e.Attempts)
	q.Complete(e.ID)

	assert.EqualValues(t, 2, q.AbandonedCount())
	assert.EqualValues(t, 1, q.CompletedCount())
	assert.Equal(t, 0, q.DeadLetterCount())
}

// S3 — exhausted retries.
func TestExhaustedRetries(t *testing.T) {
	q := New[string]("s3", WithRetryLimit[string](2), WithBaseDelay[string](0), WithVisibilityTimeout[string](60*time.Second))

	q.Enqueue("X")

	for i := 0; i < 3; i++ {
		e, ok := q.Dequeue(0)
		assert.True(t, ok)
		q.Abandon(e.ID)
	}

	assert.EqualValues(t, 3, q.AbandonedCount())
	assert.Equal(t, 1, q.DeadLetterCount())

	var items []string
	for payload := range q.DeadLetterItems() {
		items = append(items, payload)
	}
	assert.Equal(t, []string{"X"}, items)

	// Retry budget exhausted: no further dequeue returns the entry.
	_, ok := q.Dequeue(0)
	assert.False(t, ok)
}

// S4 — visibility timeout.
func TestVisibilityTimeout(t *testing.T) {
	q := New[string]("s4", WithRetryLimit[string](0), WithVisibilityTimeout[string](100*time.Millisecond))

	q.Enqueue("X")
	_, ok := q.Dequeue(0)
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		return q.InFlightCount() == 0
	}, 500*time.Millisecond, 10*time.Millisecond)

	assert.Equal(t, 1, q.DeadLetterCount())
	assert.EqualValues(t, 1, q.WorkerTimeoutCount())
}

// S5 — worker auto-complete.
func TestWorkerAutoComplete(t *testing.T) {
	q := New[int]("s5", WithRetryLimit[int](0))

	const n = 500
	for i := 0; i < n; i++ {
		q.Enqueue(i)
	}

	q.StartWorking(func(ctx context.Context, e *Entry[int]) error {
		return nil
	}, true)
	defer q.StopWorking()

	assert.Eventually(t, func() bool {
		return q.CompletedCount() == n
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, q.ReadyCount())
	assert.EqualValues(t, 0, q.WorkerErrorCount())
}

// S6 — worker handler failure.
func TestWorkerHandlerFailure(t *testing.T) {
	q := New[string]("s6", WithRetryLimit[string](1), WithBaseDelay[string](0))

	q.Enqueue("X")

	failing := errors.New("handler failure")
	q.StartWorking(func(ctx context.Context, e *Entry[string]) error {
		return failing
	}, true)
	defer q.StopWorking()

	assert.Eventually(t, func() bool {
		return q.DeadLetterCount() == 1
	}, 5*time.Second, 5*time.Millisecond)

	assert.EqualValues(t, 2, q.WorkerErrorCount())
}

// S7 — backoff schedule.
func TestBackoffSchedule(t *testing.T) {
	q := New[string]("s7",
		WithRetryLimit[string](3),
		WithBaseDelay[string](10*time.Millisecond),
		WithMultiplierSchedule[string]([]int{1, 3, 5, 10}),
	)

	q.Enqueue("X")

	expected := []time.Duration{10 * time.Millisecond, 30 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}

	var last time.Time
	for i := range expected {
		e, ok := q.Dequeue(2 * time.Second)
		assert.True(t, ok, "dequeue %d", i)
		if i > 0 {
			// The gap before dequeue i was produced by the abandon at
			// iteration i-1 scheduling a retry with expected[i-1].
			elapsed := time.Since(last)
			assert.InDelta(t, float64(expected[i-1]), float64(elapsed), float64(20*time.Millisecond))
		}
		last = time.Now()
		q.Abandon(e.ID)
	}

	assert.Equal(t, 1, q.DeadLetterCount())
}

func TestBeforeEnqueueVeto(t *testing.T) {
	q := New[string]("veto", WithEventHandler[string](&vetoHandler{}))

	id, ok := q.Enqueue("nope")
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.EqualValues(t, 0, q.EnqueuedCount())
	assert.Equal(t, 0, q.ReadyCount())
}

type vetoHandler struct{ noopEventHandler[string] }

func (vetoHandler) BeforeEnqueue(*Queue[string], string) bool { return false }

func TestCompleteUnknownIDPanics(t *testing.T) {
	q := New[string]("panic-complete")
	assert.Panics(t, func() { q.Complete("does-not-exist") })
}

func TestAbandonUnknownIDPanics(t *testing.T) {
	q := New[string]("panic-abandon")
	assert.Panics(t, func() { q.Abandon("does-not-exist") })
}

func TestDeleteZeroesCounters(t *testing.T) {
	q := New[string]("delete", WithRetryLimit[string](0), WithVisibilityTimeout[string](50*time.Millisecond))

	q.Enqueue("X")
	e, _ := q.Dequeue(0)
	q.Abandon(e.ID)

	assert.Equal(t, 1, q.DeadLetterCount())

	q.Delete()

	assert.Equal(t, 0, q.ReadyCount())
	assert.Equal(t, 0, q.InFlightCount())
	assert.Equal(t, 0, q.DeadLetterCount())
	assert.EqualValues(t, 0, q.EnqueuedCount())
	assert.EqualValues(t, 0, q.WorkerTimeoutCount())
}

func TestDisposeStopsWorkerAndTimers(t *testing.T) {
	q := New[string]("dispose", WithVisibilityTimeout[string](50*time.Millisecond))

	q.StartWorking(func(ctx context.Context, e *Entry[string]) error { return nil }, true)
	q.Enqueue("X")
	q.Dequeue(time.Second)

	q.Dispose()
	q.Dispose() // second call must be a no-op, not a panic
}
