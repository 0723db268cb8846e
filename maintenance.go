package workqueue

import "time"

// doMaintenance is the Armable callback: it scans the in-flight table for
// entries whose visibility window has elapsed, re-arms the timer to the
// earliest remaining deadline, and only then abandons the timed-out
// entries (spec.md §4.4 — re-arming before abandoning keeps the scan
// itself the only O(n) step; arming stays O(1)).
func (q *Queue[T]) doMaintenance() {
	now := q.cfg.clock()

	q.inFlightMu.Lock()
	var timedOut []string
	var nextDeadline time.Time
	haveNext := false
	for id, e := range q.inFlight {
		deadline := e.DequeuedAt.Add(q.cfg.visibility)
		if !deadline.After(now) {
			timedOut = append(timedOut, id)
			continue
		}
		if !haveNext || deadline.Before(nextDeadline) {
			nextDeadline = deadline
			haveNext = true
		}
	}
	q.inFlightMu.Unlock()

	if haveNext {
		q.armMaintenance(nextDeadline)
	}

	for _, id := range timedOut {
		q.workerTimeouts.Add(1)
		q.cfg.logger.Warn("entry reclaimed on visibility timeout", "id", id, "queue", q.id)
		q.Abandon(id)
	}
}
