package workqueue

import (
	"sync"
	"sync/atomic"

	"github.com/kart-io/workqueue/internal/sched"
)

// Queue is an in-process, typed work queue. The zero value is not
// usable; construct one with New.
type Queue[T any] struct {
	id string

	cfg config[T]

	readyMu sync.Mutex
	ready   []*Entry[T]

	inFlightMu sync.Mutex
	inFlight   map[string]*Entry[T]

	deadLetterMu sync.Mutex
	deadLetter   []*Entry[T]

	signal *availSignal

	enqueued       atomic.Int64
	dequeued       atomic.Int64
	completed      atomic.Int64
	abandoned      atomic.Int64
	workerErrors   atomic.Int64
	workerTimeouts atomic.Int64

	maintenance *sched.Armable
	retrySched  *sched.Delayed

	workerMu     sync.Mutex
	workerCancel func()
	workerDone   chan struct{}

	disposeOnce sync.Once
}

// New constructs a Queue with the given options applied over spec.md §6's
// defaults (R=2, D=1m, M=[1,3,5,10], V=10m).
func New[T any](id string, opts ...Option[T]) *Queue[T] {
	cfg := defaultConfig[T]()
	for _, o := range opts {
		o.apply(&cfg)
	}

	q := &Queue[T]{
		id:       id,
		cfg:      cfg,
		inFlight: make(map[string]*Entry[T]),
		signal:   newAvailSignal(),
	}
	q.maintenance = sched.NewArmable(cfg.clock, q.doMaintenance)
	q.retrySched = sched.NewDelayed(cfg.clock)
	return q
}

// ID returns the queue's opaque identifier.
func (q *Queue[T]) ID() string { return q.id }

// Enqueue hands payload to the queue. It returns the new entry's id, or
// ("", false) if the event handler's BeforeEnqueue hook vetoed the
// enqueue — in which case no state changes at all.
func (q *Queue[T]) Enqueue(payload T) (string, bool) {
	if !q.cfg.eventHandler.BeforeEnqueue(q, payload) {
		return "", false
	}

	stored := payload
	if q.cfg.serializer != nil {
		if cp, err := roundTrip(q.cfg.serializer, payload); err == nil {
			stored = cp
		}
	}

	e := &Entry[T]{ID: newEntryID(), Payload: stored}

	q.readyMu.Lock()
	q.ready = append(q.ready, e)
	q.readyMu.Unlock()
	q.signal.set()

	q.enqueued.Add(1)
	q.reportGauge(float64(q.ReadyCount()))
	q.cfg.logger.Debug("entry enqueued", "id", e.ID, "queue", q.id)
	q.cfg.eventHandler.AfterEnqueue(q, e.ID, payload)

	return e.ID, true
}

// popReady removes and returns the head of the ready list, or nil if it
// is empty. Ordering is FIFO best-effort per spec.md §4.1: under
// concurrent dequeues the removal may observe a non-head item's slot
// race, but in this single-mutex implementation it is, in practice,
// exactly FIFO for any interleaving that serializes through readyMu;
// the "best-effort" wording in spec.md allows for — but does not
// require — a looser, lock-free container.
func (q *Queue[T]) popReady() *Entry[T] {
	q.readyMu.Lock()
	defer q.readyMu.Unlock()
	if len(q.ready) == 0 {
		return nil
	}
	e := q.ready[0]
	q.ready[0] = nil
	q.ready = q.ready[1:]
	return e
}

func (q *Queue[T]) pushReady(e *Entry[T]) {
	q.readyMu.Lock()
	q.ready = append(q.ready, e)
	q.readyMu.Unlock()
	q.signal.set()
}

// ReadyCount returns the number of entries waiting to be delivered.
func (q *Queue[T]) ReadyCount() int {
	q.readyMu.Lock()
	defer q.readyMu.Unlock()
	return len(q.ready)
}
