// Package delayed provides transparent, memoized lazy evaluation for Go.
//
// This repository explores a progression of small, opinionated patterns for
// deferring a computation until its result is first used:
//
//   - v1: lazy.Value[T] — guarded handles with failable producers, typed
//     errors, and introspection
//   - v2: lazy.ValueV2[T] — minimal sync.Once handles for producers that
//     cannot fail
//   - v3: proxy.Delay + cmd/delaygen — reflection-driven handle creation
//     plus code-generated per-interface forwarding wrappers
//
// The goal is to keep forcing explicit and cheap, evaluate each producer at
// most once on the success path, and keep the surface area intentionally
// small.
//
// Start with the runnable examples in the repo for end-to-end usage.
//
// See subpackages:
//   - lazy: the core deferred-value handles and iterator adapters
//   - proxy: runtime handle creation and the wrapper-type registry
//   - cmd/delaygen: code generator for interface forwarding wrappers
//   - examples/*: runnable examples for each version
package delayed
