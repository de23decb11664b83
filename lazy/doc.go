// Package lazy provides small, explicit deferred-value handles for Go.
//
// This package intentionally supports two approaches:
//
//   - v1: Value[T] — a guarded handle whose producer may fail. Forcing is
//     safe under concurrent use, failures carry typed/sentinel errors, and
//     the handle can be introspected (Forced). Best when the deferred
//     computation can go wrong and you want guardrails and test assertions
//     around it.
//
//   - v2: ValueV2[T] — a minimal sync.Once wrapper for producers that cannot
//     fail. No error plumbing, no introspection, no retry semantics. Best
//     when you want maximum simplicity and the smallest possible surface.
//
// Both versions evaluate their producer at most once on the success path and
// cache the result for the lifetime of the handle. Neither version evaluates
// anything at construction time: work happens on the first Force (or, for
// the iterator adapters, on the first pull).
//
// # Quick guidance
//
// Use v1 when you want:
//   - Producers that return errors, surfaced at the forcing call site
//   - Retry-on-failure semantics (a failed producer is not memoized)
//   - Introspection (has this handle been forced yet?) via Forced
//   - Derived handles via Map / MapErr without forcing the source
//
// Use v2 when you want:
//   - Just a function and a cached result
//   - Zero error handling inside the handle
//   - Minimal runtime overhead and simplest API
//
// # Import
//
//	"github.com/sghaida/delayed/lazy"
package lazy
