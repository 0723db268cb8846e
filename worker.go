package workqueue

import (
	"context"
	"time"
)

// defaultWorkerWait bounds how long an idle worker waits on the
// availability signal before re-checking the ready list on its own,
// mirroring NSQ's pqWorker defaultWorkerWait constant (spec.md C9: "wait
// on C5 up to 250ms if ready is empty").
const defaultWorkerWait = 250 * time.Millisecond

// Handler processes a single dequeued entry. Returning a non-nil error
// marks the entry for abandonment when autoComplete is set; returning
// nil marks it for completion.
type Handler[T any] func(ctx context.Context, e *Entry[T]) error

// StartWorking starts a single background goroutine that dequeues
// entries and invokes handler for each. At most one worker runs per
// queue — calling StartWorking again while one is running is a no-op.
// When autoComplete is true the worker calls Complete on a nil handler
// return and Abandon on a non-nil one; when false the handler is
// responsible for calling Complete/Abandon itself.
func (q *Queue[T]) StartWorking(handler Handler[T], autoComplete bool) {
	q.workerMu.Lock()
	defer q.workerMu.Unlock()

	if q.workerCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	q.workerCancel = cancel
	q.workerDone = make(chan struct{})

	go q.runWorker(ctx, handler, autoComplete)
}

func (q *Queue[T]) runWorker(ctx context.Context, handler Handler[T], autoComplete bool) {
	defer close(q.workerDone)

	for {
		if q.ReadyCount() == 0 {
			select {
			case <-ctx.Done():
				return
			case <-q.signal.ch:
			case <-time.After(defaultWorkerWait):
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		e, ok := q.Dequeue(0)
		if !ok {
			continue
		}

		err := handler(ctx, e)
		if err != nil {
			q.workerErrors.Add(1)
			q.cfg.logger.Error("worker handler failed", "id", e.ID, "queue", q.id, "error", err)
		}

		if autoComplete {
			if err != nil {
				q.Abandon(e.ID)
			} else {
				q.Complete(e.ID)
			}
		}
	}
}

// StopWorking cancels the running worker and blocks until its goroutine
// has exited. It is a no-op if no worker is running. It does not affect
// the maintenance timer or the retry scheduler (spec.md §4.3).
func (q *Queue[T]) StopWorking() {
	q.workerMu.Lock()
	cancel := q.workerCancel
	done := q.workerDone
	q.workerCancel = nil
	q.workerDone = nil
	q.workerMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
