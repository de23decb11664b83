// Package proxy creates deferred-value handles at runtime for types whose
// forwarding wrappers are registered in a process-wide registry.
//
// The lazy package covers the common case: the call site knows T and holds a
// *lazy.Value[T]. This package covers the transparent case: the call site
// wants an object that looks like a T (usually an interface) and forwards
// every method to a value produced on first use.
//
// Go cannot synthesize such a wrapper type at runtime, so the wrapper for
// each supported type is written once — normally generated by cmd/delaygen —
// and registered here, keyed by reflect.Type. Delay then only has to:
//
//   - determine the result type from the producer's own signature (its
//     declared return type plays the role of an annotation), or take an
//     explicit override via WithType / WithTypeOf
//   - look the type up in the registry
//   - hand the registered factory a memoizing force function
//
// The registry is read-mostly shared state: entries are added once (usually
// from generated init functions) and never evicted.
//
// # Import
//
//	"github.com/sghaida/delayed/proxy"
package proxy
