package lazy

import "sync"

// ValueV2 Minimal deferred value (no error plumbing here anymore; failable
// producers belong in Value).
type ValueV2[T any] struct {
	once     sync.Once
	producer func() T
	value    T
}

func NewV2[T any](producer func() T) *ValueV2[T] {
	return &ValueV2[T]{producer: producer}
}

// Force returns the deferred value, running the producer on the first call.
func (v *ValueV2[T]) Force() T {
	v.once.Do(func() {
		v.value = v.producer()
		v.producer = nil
	})
	return v.value
}
