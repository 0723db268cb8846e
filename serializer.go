package workqueue

import "encoding/json"

// Serializer deep-copies reference-typed payloads so that a producer's
// later mutation is never visible to a consumer, and vice versa. Spec
// design note: prefer Go's own value semantics over a serialize
// round-trip whenever possible — Serializer exists for the cases where a
// payload holds pointers, slices, or maps and a real deep copy is
// needed, not as the default copy mechanism.
type Serializer[T any] interface {
	Serialize(v T) ([]byte, error)
	Deserialize(data []byte) (T, error)
}

// roundTrip performs a serialize-then-deserialize deep copy of v.
func roundTrip[T any](s Serializer[T], v T) (T, error) {
	data, err := s.Serialize(v)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Deserialize(data)
}

// JSONSerializer is a built-in Serializer backed by encoding/json. It is
// a fallback for callers whose payload type holds reference data and who
// want a ready-made deep copy, not the primary copy mechanism (see the
// Serializer doc above).
type JSONSerializer[T any] struct{}

func (JSONSerializer[T]) Serialize(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONSerializer[T]) Deserialize(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
