package workqueue

import "time"

// DefaultDequeueTimeout is the default wait applied when a caller wants
// spec.md §4.1's default blocking behavior.
const DefaultDequeueTimeout = 30 * time.Second

// Dequeue removes and returns the head of the ready list, blocking up to
// timeout if the list is currently empty. A zero timeout is
// non-blocking. Returns (nil, false) if no entry became available within
// timeout.
func (q *Queue[T]) Dequeue(timeout time.Duration) (*Entry[T], bool) {
	e := q.popReady()
	if e == nil {
		if timeout > 0 {
			deadline := time.NewTimer(timeout)
			defer deadline.Stop()
		wait:
			for e == nil {
				select {
				case <-q.signal.ch:
					e = q.popReady()
				case <-deadline.C:
					e = q.popReady()
					break wait
				}
			}
		}
		if e == nil {
			return nil, false
		}
	}

	now := q.cfg.clock()
	q.cfg.eventHandler.OnDequeue(q, e.ID, e.Payload)
	q.dequeued.Add(1)
	e.DequeuedAt = now
	e.Attempts++

	q.inFlightMu.Lock()
	if _, exists := q.inFlight[e.ID]; exists {
		q.inFlightMu.Unlock()
		// Ids are generated from a 128-bit random space; a collision
		// here means the in-flight table or id generator is broken.
		panic("workqueue: dequeue: id collision on entry " + e.ID)
	}
	q.inFlight[e.ID] = e
	q.inFlightMu.Unlock()

	q.armMaintenance(now.Add(q.cfg.visibility))

	q.reportGauge(float64(q.ReadyCount()))
	q.cfg.logger.Debug("entry dequeued", "id", e.ID, "attempts", e.Attempts, "queue", q.id)

	return e.clone(q.cfg.serializer), true
}

// armMaintenance arms the single maintenance timer to fire no later than
// t; an already pending earlier deadline is kept. It does not scan the
// in-flight table: arming to a candidate deadline and letting
// do_maintenance recompute the real minimum on fire keeps arming itself
// O(1) regardless of how many entries are in flight (spec.md §4.4).
func (q *Queue[T]) armMaintenance(t time.Time) {
	q.maintenance.Arm(t)
}
