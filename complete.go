package workqueue

// Complete marks id as successfully processed and discards it. id must
// currently be in the in-flight table — completing an unknown or
// already-completed id is a fatal usage error (see UsageError).
func (q *Queue[T]) Complete(id string) {
	q.cfg.eventHandler.OnComplete(q, id)

	q.inFlightMu.Lock()
	_, ok := q.inFlight[id]
	if ok {
		delete(q.inFlight, id)
	}
	q.inFlightMu.Unlock()

	if !ok {
		fatalf("complete", id)
	}

	q.completed.Add(1)
	q.reportGauge(float64(q.InFlightCount()))
	q.cfg.logger.Debug("entry completed", "id", id, "queue", q.id)
}

// Abandon returns id to the retry path if its budget remains, or moves
// it to the dead-letter list once attempts exceed the retry limit. id
// must currently be in the in-flight table — abandoning an unknown id is
// a fatal usage error.
func (q *Queue[T]) Abandon(id string) {
	q.cfg.eventHandler.OnAbandon(q, id)

	q.inFlightMu.Lock()
	e, ok := q.inFlight[id]
	if ok {
		delete(q.inFlight, id)
	}
	q.inFlightMu.Unlock()

	if !ok {
		fatalf("abandon", id)
	}

	q.abandoned.Add(1)
	q.cfg.logger.Debug("entry abandoned", "id", id, "attempts", e.Attempts, "queue", q.id)
	q.reportGauge(float64(q.InFlightCount()))

	if q.cfg.policy.Exhausted(e.Attempts) {
		q.deadLetterMu.Lock()
		q.deadLetter = append(q.deadLetter, e)
		q.deadLetterMu.Unlock()
		q.cfg.logger.Warn("entry dead-lettered", "id", id, "attempts", e.Attempts, "queue", q.id)
		q.reportGauge(float64(q.DeadLetterCount()))
		return
	}

	delay := q.cfg.policy.Delay(e.Attempts)
	if delay <= 0 {
		q.pushReady(e)
		q.reportGauge(float64(q.ReadyCount()))
		return
	}
	q.retrySched.Schedule(q.cfg.clock().Add(delay), func() {
		q.pushReady(e)
		q.reportGauge(float64(q.ReadyCount()))
	})
}

// DeadLetterItems returns a lazy iterator over dead-letter payloads, a
// snapshot taken at call time. It never removes entries.
func (q *Queue[T]) DeadLetterItems() func(yield func(T) bool) {
	q.deadLetterMu.Lock()
	snapshot := make([]T, len(q.deadLetter))
	for i, e := range q.deadLetter {
		snapshot[i] = e.Payload
	}
	q.deadLetterMu.Unlock()

	return func(yield func(T) bool) {
		for _, payload := range snapshot {
			if !yield(payload) {
				return
			}
		}
	}
}

// Delete clears the ready list, in-flight table, and dead-letter list,
// and zeros every counter (including worker timeouts — see DESIGN.md's
// Open Question (a)). It does not stop the worker or cancel pending
// maintenance/retry tasks by itself.
func (q *Queue[T]) Delete() {
	q.readyMu.Lock()
	q.ready = nil
	q.readyMu.Unlock()

	q.inFlightMu.Lock()
	q.inFlight = make(map[string]*Entry[T])
	q.inFlightMu.Unlock()

	q.deadLetterMu.Lock()
	q.deadLetter = nil
	q.deadLetterMu.Unlock()

	q.enqueued.Store(0)
	q.dequeued.Store(0)
	q.completed.Store(0)
	q.abandoned.Store(0)
	q.workerErrors.Store(0)
	q.workerTimeouts.Store(0)

	q.cfg.logger.Info("queue deleted", "queue", q.id)
}

// InFlightCount returns the number of entries dequeued but not yet
// completed or abandoned.
func (q *Queue[T]) InFlightCount() int {
	q.inFlightMu.Lock()
	defer q.inFlightMu.Unlock()
	return len(q.inFlight)
}

// DeadLetterCount returns the number of entries whose retry budget is
// exhausted.
func (q *Queue[T]) DeadLetterCount() int {
	q.deadLetterMu.Lock()
	defer q.deadLetterMu.Unlock()
	return len(q.deadLetter)
}

// EventHandler returns the currently installed EventHandler, never nil.
func (q *Queue[T]) EventHandler() EventHandler[T] { return q.cfg.eventHandler }

// SetEventHandler installs h. Passing nil reverts to the no-op handler.
func (q *Queue[T]) SetEventHandler(h EventHandler[T]) {
	if h == nil {
		h = noopEventHandler[T]{}
	}
	q.cfg.eventHandler = h
}
