package proxy

import (
	"errors"
	"reflect"
	"sort"
	"sync"
)

// Factory builds a forwarding wrapper around a force function.
//
// force evaluates the deferred producer (memoized: at most one successful
// invocation) and returns the produced value. The returned wrapper must
// delegate every operation to force()'s result.
type Factory func(force func() (any, error)) any

// ErrNilFactory is returned when registering a nil factory.
var ErrNilFactory = errors.New("proxy: nil wrapper factory")

// ErrNilType is returned when registering a nil reflect.Type.
var ErrNilType = errors.New("proxy: nil type")

// DuplicateTypeError is returned when a wrapper factory is already
// registered for the type. Registration is once per type for the process
// lifetime; there is no re-registration or eviction.
type DuplicateTypeError struct{ Type reflect.Type }

// Error implements the error interface.
func (e DuplicateTypeError) Error() string {
	// Example: proxy: wrapper already registered for main.Greeter
	return "proxy: wrapper already registered for " + e.Type.String()
}

// UnsupportedTypeError is returned by Delay when no wrapper factory is
// registered for the requested type.
type UnsupportedTypeError struct{ Type reflect.Type }

// Error implements the error interface.
func (e UnsupportedTypeError) Error() string {
	// Example: proxy: no wrapper registered for main.Greeter (run delaygen and import the generated file)
	return "proxy: no wrapper registered for " + e.Type.String() +
		" (run delaygen and import the generated file)"
}

// Registry maps result types to wrapper factories.
//
// It is read-mostly: factories are registered once (typically from generated
// init functions) and looked up on every Delay call. All methods are safe
// for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]Factory
}

// NewRegistry constructs an empty registry.
//
// Most callers use the package-level Default registry instead; separate
// registries are mainly useful in tests.
func NewRegistry() *Registry {
	return &Registry{factories: map[reflect.Type]Factory{}}
}

// Register stores a wrapper factory for typ.
//
// It fails with:
//   - ErrNilType when typ is nil
//   - ErrNilFactory when factory is nil
//   - DuplicateTypeError when a factory is already registered for typ
func (r *Registry) Register(typ reflect.Type, factory Factory) error {
	if typ == nil {
		return ErrNilType
	}
	if factory == nil {
		return ErrNilFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories == nil {
		r.factories = map[reflect.Type]Factory{}
	}
	if _, exists := r.factories[typ]; exists {
		return DuplicateTypeError{Type: typ}
	}

	r.factories[typ] = factory
	return nil
}

// MustRegister registers a factory or panics.
//
// Generated wrappers call this from init, where a duplicate registration is
// a programming error that should fail fast.
func (r *Registry) MustRegister(typ reflect.Type, factory Factory) {
	if err := r.Register(typ, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered for typ, if any.
func (r *Registry) Lookup(typ reflect.Type) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[typ]
	return factory, ok
}

// Types returns the registered types, sorted by their string form.
//
// Intended for introspection and test assertions.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.factories))
	for typ := range r.factories {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// Default is the process-wide registry used by the package-level functions
// and by cmd/delaygen-generated init registrations.
var Default = NewRegistry()

// Register stores a wrapper factory for typ in the Default registry.
func Register(typ reflect.Type, factory Factory) error {
	return Default.Register(typ, factory)
}

// MustRegister registers a factory in the Default registry or panics.
func MustRegister(typ reflect.Type, factory Factory) {
	Default.MustRegister(typ, factory)
}

// Lookup returns the Default registry's factory for typ, if any.
func Lookup(typ reflect.Type) (Factory, bool) {
	return Default.Lookup(typ)
}
