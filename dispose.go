package workqueue

import "golang.org/x/sync/errgroup"

// Dispose stops the worker (if running), the maintenance timer, and the
// retry scheduler's background goroutine. Retries still pending in the
// scheduler's heap at the time of Dispose never fire — spec.md §9 allows
// implementations to cancel pending retry-reinsertion tasks on shutdown,
// and this one does, so Dispose leaves no goroutine behind. Safe to call
// more than once; only the first call has any effect.
func (q *Queue[T]) Dispose() {
	q.disposeOnce.Do(func() {
		var g errgroup.Group

		g.Go(func() error {
			q.StopWorking()
			return nil
		})
		g.Go(func() error {
			q.maintenance.Stop()
			return nil
		})
		g.Go(func() error {
			q.retrySched.Stop()
			return nil
		})

		_ = g.Wait()
		q.cfg.logger.Info("queue disposed", "queue", q.id)
	})
}
