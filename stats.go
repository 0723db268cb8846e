package workqueue

// Stats is a point-in-time snapshot of a queue's counters, per
// SPEC_FULL.md §12's supplemental Stats() accessor.
type Stats struct {
	Ready          int
	InFlight       int
	DeadLetter     int
	Enqueued       int64
	Dequeued       int64
	Completed      int64
	Abandoned      int64
	WorkerErrors   int64
	WorkerTimeouts int64
}

// Stats returns a consistent-enough snapshot of the queue's counters.
// Individual fields are read independently, so under concurrent
// activity the snapshot is a best-effort composite, not an atomic
// transaction across all fields.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Ready:          q.ReadyCount(),
		InFlight:       q.InFlightCount(),
		DeadLetter:     q.DeadLetterCount(),
		Enqueued:       q.EnqueuedCount(),
		Dequeued:       q.DequeuedCount(),
		Completed:      q.CompletedCount(),
		Abandoned:      q.AbandonedCount(),
		WorkerErrors:   q.WorkerErrorCount(),
		WorkerTimeouts: q.WorkerTimeoutCount(),
	}
}

// EnqueuedCount returns the lifetime number of successful enqueues.
func (q *Queue[T]) EnqueuedCount() int64 { return q.enqueued.Load() }

// DequeuedCount returns the lifetime number of successful dequeues,
// including redeliveries after a retry or a visibility-timeout reclaim.
func (q *Queue[T]) DequeuedCount() int64 { return q.dequeued.Load() }

// CompletedCount returns the lifetime number of entries completed.
func (q *Queue[T]) CompletedCount() int64 { return q.completed.Load() }

// AbandonedCount returns the lifetime number of entries abandoned,
// whether by explicit call or by visibility-timeout reclaim.
func (q *Queue[T]) AbandonedCount() int64 { return q.abandoned.Load() }

// WorkerErrorCount returns the number of handler invocations that
// returned a non-nil error while a worker was running.
func (q *Queue[T]) WorkerErrorCount() int64 { return q.workerErrors.Load() }

// WorkerTimeoutCount returns the number of entries reclaimed by the
// maintenance timer after their visibility window elapsed.
func (q *Queue[T]) WorkerTimeoutCount() int64 { return q.workerTimeouts.Load() }
