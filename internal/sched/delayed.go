package sched

import (
	"container/heap"
	"sync"
	"time"
)

// delayedTask is one scheduled callback, ordered by its fire time.
type delayedTask struct {
	at    time.Time
	fn    func()
	index int
}

type taskHeap []*delayedTask

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *taskHeap) Push(x interface{}) {
	t := x.(*delayedTask)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Delayed runs an unbounded number of independently-scheduled callbacks,
// each after its own delay, via a min-heap and a single re-armed
// timer — the same precise-deadline discipline Armable uses for C6,
// generalized from "one deadline" to "one deadline per pending task."
// Unlike Armable, tasks here are not coalesced: every Schedule call gets
// its own future firing, because spec.md C7 calls for "a single delayed
// task per abandoned-with-budget entry," not one shared deadline. Only
// the heap root ever has a live timer; firing it pops every task whose
// deadline has elapsed and re-arms to the new root, so scheduling stays
// exact regardless of how small the configured base delay is.
type Delayed struct {
	now func() time.Time

	mu      sync.Mutex
	heap    taskHeap
	timer   *time.Timer
	stopped bool
}

// NewDelayed constructs a Delayed scheduler. No background goroutine
// runs until the first Schedule call; the timer lives only as long as
// something is pending. It is intentionally independent of any worker
// lifecycle (spec.md C7: "tasks outlive stop_working — they are tied to
// the queue, not the worker").
func NewDelayed(now func() time.Time) *Delayed {
	if now == nil {
		now = time.Now
	}
	d := &Delayed{now: now}
	heap.Init(&d.heap)
	return d
}

// Schedule arranges for fn to run once, at t.
func (d *Delayed) Schedule(t time.Time, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	heap.Push(&d.heap, &delayedTask{at: t, fn: fn})
	d.rearm()
}

// rearm points the single timer at the current heap root. Callers must
// hold mu.
func (d *Delayed) rearm() {
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.heap.Len() == 0 {
		return
	}
	delay := d.heap[0].at.Sub(d.now())
	if delay < 0 {
		delay = 0
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

// fire runs every task whose deadline has elapsed and re-arms for
// whatever remains.
func (d *Delayed) fire() {
	d.mu.Lock()
	now := d.now()
	var ready []func()
	for d.heap.Len() > 0 {
		next := d.heap[0]
		if next.at.After(now) {
			break
		}
		ready = append(ready, heap.Pop(&d.heap).(*delayedTask).fn)
	}
	d.rearm()
	d.mu.Unlock()

	for _, fn := range ready {
		go fn()
	}
}

// Stop cancels the pending timer. Any tasks still in the heap never
// fire, and further Schedule calls are no-ops. Safe to call more than
// once.
func (d *Delayed) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
