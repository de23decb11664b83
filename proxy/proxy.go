package proxy

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sghaida/delayed/lazy"
)

// ErrFactoryPanic is returned if a registered factory panics while building
// its wrapper.
var ErrFactoryPanic = errors.New("proxy: panic in wrapper factory")

// MissingAnnotationError is returned by Delay when the result type cannot be
// determined from the producer's signature and no explicit type was given.
type MissingAnnotationError struct {
	// Producer is the reflected type of the offending producer; nil when the
	// producer itself was nil.
	Producer reflect.Type

	// Reason says what disqualified the signature.
	Reason string
}

// Error implements the error interface.
func (e MissingAnnotationError) Error() string {
	// Example: proxy: cannot determine result type of func(int) int: producer must take no arguments
	if e.Producer == nil {
		return "proxy: cannot determine result type: " + e.Reason
	}
	return "proxy: cannot determine result type of " + e.Producer.String() + ": " + e.Reason
}

// ExcludedMethodError is the panic value raised by generated wrapper
// methods that were excluded from forwarding (re-initialization-style
// methods, see cmd/delaygen's -exclude flag). Such methods keep the wrapper
// satisfying its interface but refuse to run construction-like semantics
// against a value that was never built through that path.
type ExcludedMethodError struct{ Method string }

// Error implements the error interface.
func (e ExcludedMethodError) Error() string {
	// Example: proxy: method Reset excluded from forwarding
	return "proxy: method " + e.Method + " excluded from forwarding"
}

// errorType is the reflected error interface, used to recognize
// func() (T, error) producers.
var errorType = reflect.TypeFor[error]()

type config struct {
	resultType reflect.Type
	registry   *Registry
}

// Option adjusts how Delay interprets a producer.
type Option func(*config)

// WithType overrides the result type inferred from the producer's
// signature.
//
// Required when the producer's declared return type is not the registered
// type, e.g. a func() any producing a concrete value, or a producer
// returning a concrete type whose wrapper is registered under an interface.
func WithType(typ reflect.Type) Option {
	return func(c *config) { c.resultType = typ }
}

// WithTypeOf is WithType for a concrete example value: the override is
// reflect.TypeOf(example). For interface types use WithType with
// reflect.TypeFor, since an interface value reflects as its dynamic type.
func WithTypeOf(example any) Option {
	return func(c *config) { c.resultType = reflect.TypeOf(example) }
}

// WithRegistry makes Delay resolve wrappers against a specific registry
// instead of Default. Mainly useful in tests.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}

// Delay returns a forwarding wrapper for the value producer will eventually
// return, without invoking producer.
//
// producer must be a func with no parameters and either one result or a
// (T, error) pair; its first result type determines which registered wrapper
// is used unless WithType / WithTypeOf overrides it. The producer runs at
// most once on the success path, triggered by the first operation performed
// on the wrapper; a producer failure surfaces at that triggering call site
// and is not memoized (a later operation retries, matching lazy.Value).
//
// Errors:
//   - MissingAnnotationError when the result type cannot be determined
//   - UnsupportedTypeError when no wrapper is registered for the type
//   - ErrFactoryPanic (wrapped) when the registered factory panics
func Delay(producer any, opts ...Option) (wrapper any, err error) {
	cfg := config{registry: Default}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = Default
	}

	fnType, err := producerType(producer)
	if err != nil {
		return nil, err
	}

	resultType := cfg.resultType
	if resultType == nil {
		resultType = fnType.Out(0)
	}

	factory, ok := cfg.registry.Lookup(resultType)
	if !ok {
		return nil, UnsupportedTypeError{Type: resultType}
	}

	// One memoized force function per handle; both creation paths (static
	// lazy.Value and dynamic wrappers) share the same forcing semantics.
	fn := reflect.ValueOf(producer)
	force := lazy.NewErr(func() (any, error) {
		outs := fn.Call(nil)
		if len(outs) == 2 {
			if callErr, _ := outs[1].Interface().(error); callErr != nil {
				return nil, callErr
			}
		}
		return outs[0].Interface(), nil
	})

	// Defensively convert factory panics into errors.
	defer func() {
		if rec := recover(); rec != nil {
			wrapper = nil
			err = fmt.Errorf("%w: %v", ErrFactoryPanic, rec)
		}
	}()

	return factory(force.Force), nil
}

// MustDelay returns the wrapper or panics.
//
// Useful in composition roots and examples where a missing wrapper
// registration should fail fast.
func MustDelay(producer any, opts ...Option) any {
	wrapper, err := Delay(producer, opts...)
	if err != nil {
		panic(err)
	}
	return wrapper
}

// producerType validates the producer and returns its reflected func type.
func producerType(producer any) (reflect.Type, error) {
	if producer == nil {
		return nil, MissingAnnotationError{Reason: "nil producer"}
	}

	fnType := reflect.TypeOf(producer)
	if fnType.Kind() != reflect.Func {
		return nil, MissingAnnotationError{Producer: fnType, Reason: "producer is not a function"}
	}
	if fnType.NumIn() != 0 {
		return nil, MissingAnnotationError{Producer: fnType, Reason: "producer must take no arguments"}
	}

	switch fnType.NumOut() {
	case 1:
		return fnType, nil
	case 2:
		if fnType.Out(1) != errorType {
			return nil, MissingAnnotationError{Producer: fnType, Reason: "second result must be error"}
		}
		return fnType, nil
	default:
		return nil, MissingAnnotationError{Producer: fnType, Reason: "producer must return one result (plus an optional error)"}
	}
}
