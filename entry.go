package workqueue

import (
	"time"

	"github.com/google/uuid"
)

// Entry is the envelope around a caller payload as it moves through the
// queue. Its id is stable across retries; Attempts counts every dequeue,
// including the first.
type Entry[T any] struct {
	ID         string
	Payload    T
	Attempts   int
	DequeuedAt time.Time
}

// newEntryID allocates an opaque, unique entry id. Collision probability
// is negligible (128-bit id space), per the queue's uniqueness invariant.
func newEntryID() string {
	return uuid.NewString()
}

// clone returns a copy of the entry suitable for handing to a consumer
// without exposing the queue's internal pointer. If a serializer is
// configured it is used to deep-copy Payload; otherwise Go's ordinary
// value-copy semantics apply (see the Serializer doc in serializer.go).
func (e *Entry[T]) clone(s Serializer[T]) *Entry[T] {
	cp := *e
	if s != nil {
		if payload, err := roundTrip(s, e.Payload); err == nil {
			cp.Payload = payload
		}
	}
	return &cp
}
