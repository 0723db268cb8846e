package workqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartWorkingTwiceIsNoop(t *testing.T) {
	q := New[string]("worker-singleton")

	calls := make(chan struct{}, 10)
	handler := func(ctx context.Context, e *Entry[string]) error {
		calls <- struct{}{}
		return nil
	}

	q.StartWorking(handler, true)
	q.StartWorking(handler, true) // second call must not start a second goroutine
	defer q.StopWorking()

	q.Enqueue("X")

	assert.Eventually(t, func() bool {
		return q.CompletedCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestStopWorkingWithoutStartIsNoop(t *testing.T) {
	q := New[string]("worker-idle")
	assert.NotPanics(t, func() { q.StopWorking() })
}

func TestManualCompleteModeLeavesHandlerInControl(t *testing.T) {
	q := New[string]("worker-manual", WithRetryLimit[string](0))

	q.Enqueue("X")

	q.StartWorking(func(ctx context.Context, e *Entry[string]) error {
		q.Complete(e.ID)
		return nil
	}, false)
	defer q.StopWorking()

	assert.Eventually(t, func() bool {
		return q.CompletedCount() == 1
	}, time.Second, 5*time.Millisecond)
}
