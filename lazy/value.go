// Package lazy provides a small, generic deferred-value helper.
//
// It models a computation (the producer) plus a single cache slot (the
// forced value). Forcing is done via Force/MustForce, which evaluate the
// producer at most once on the success path and return typed errors on
// invalid handles.
//
// Design goals:
//   - Lightweight: small API surface, one mutex, no goroutines.
//   - Explicit forcing: callers decide exactly where evaluation may happen.
//   - Safe defaults: concurrent first-force runs the producer exactly once.
//   - Test-friendly: producer failures are ordinary error values and the
//     handle state is observable via Forced.
//
// Notes on performance:
//   - The forced path is dominated by a mutex acquire and a field read.
//   - Error paths avoid fmt.Errorf to keep failure handling inexpensive when
//     used in benchmarks or for control flow.
package lazy

import (
	"errors"
	"sync"
)

// ErrNilProducer is returned by Force when the handle was created with a nil
// producer. MustForce panics with it instead.
var ErrNilProducer = errors.New("lazy: nil producer")

// Value is a deferred value of type T.
//
// A Value holds a zero-argument producer and a single cache slot. The first
// successful Force invokes the producer, stores its result, and drops the
// producer reference so it can never run again. Every later operation reads
// the cached result.
//
// A Value must not be copied after first use. The zero Value has no producer
// and fails with ErrNilProducer when forced.
type Value[T any] struct {
	mu       sync.Mutex
	producer func() (T, error)
	value    T
	forced   bool
}

// New constructs a handle around a producer that cannot fail.
//
// The producer is not invoked here; it runs during the first Force.
func New[T any](producer func() T) *Value[T] {
	if producer == nil {
		return &Value[T]{}
	}
	return &Value[T]{producer: func() (T, error) { return producer(), nil }}
}

// NewErr constructs a handle around a producer that may fail.
//
// The producer is not invoked here; it runs during the first Force.
func NewErr[T any](producer func() (T, error)) *Value[T] {
	return &Value[T]{producer: producer}
}

// Force returns the deferred value, evaluating the producer if no value has
// been cached yet.
//
// On success the result is cached permanently: the producer reference is
// dropped and every later Force returns the same value without re-running
// anything. Concurrent callers racing on the first Force observe exactly one
// producer invocation.
//
// On failure the producer's error is returned unchanged and nothing is
// cached: a later, independent Force re-invokes the producer. Failure is
// deliberately not memoized (retry-on-failure).
func (v *Value[T]) Force() (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.forced {
		return v.value, nil
	}
	if v.producer == nil {
		var zero T
		return zero, ErrNilProducer
	}

	val, err := v.producer()
	if err != nil {
		var zero T
		return zero, err
	}

	v.value = val
	v.forced = true
	v.producer = nil
	return v.value, nil
}

// MustForce returns the deferred value or panics with the producer's error.
//
// Useful at call sites whose signature cannot carry an error, and in
// examples/tests where a failing producer should fail fast.
func (v *Value[T]) MustForce() T {
	val, err := v.Force()
	if err != nil {
		panic(err)
	}
	return val
}

// Forced reports whether the handle holds a cached value.
//
// A true result is permanent. A false result only means the handle had no
// cached value at the moment of the call.
func (v *Value[T]) Forced() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.forced
}
