// Package sched implements the two scheduling primitives the queue
// needs: a single re-armable deadline timer (maintenance, spec.md C6)
// and a min-heap of independently delayed callbacks (retry
// re-insertion, spec.md C7). Both are grounded on the pack's scheduler
// code: NSQ's pqWorker loop (_examples/other_examples/.../nsqd-channel.go.go)
// for the re-arm discipline, and kart-io-notifyhub/queue/scheduler/scheduler.go's
// container/heap-backed MessageScheduler for the multi-task delay queue.
package sched

import (
	"sync"
	"time"
)

// Armable is a single-pending-timer scheduler bounded to the earliest
// deadline it has been armed with. Arming with a later deadline than the
// one already pending is a no-op; arming with an earlier deadline
// replaces the pending timer.
type Armable struct {
	now func() time.Time
	do  func()

	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
	armed    bool
}

// NewArmable creates an Armable that invokes do when its deadline
// elapses. now is injectable so tests can control the clock.
func NewArmable(now func() time.Time, do func()) *Armable {
	if now == nil {
		now = time.Now
	}
	return &Armable{now: now, do: do}
}

// Arm schedules do to run at t, unless a timer is already pending for an
// earlier (or equal) deadline, in which case it is left alone.
func (a *Armable) Arm(t time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.armed && !t.Before(a.deadline) {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.deadline = t
	a.armed = true

	d := t.Sub(a.now())
	if d < 0 {
		d = 0
	}
	a.timer = time.AfterFunc(d, func() {
		a.mu.Lock()
		a.armed = false
		a.mu.Unlock()
		a.do()
	})
}

// Stop cancels any pending timer. It does not prevent a future Arm.
func (a *Armable) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.armed = false
}
