// Command delaygen — code-generated forwarding wrappers for deferred values
//
// Go cannot synthesize a type at runtime whose every method forwards to a
// lazily produced value, so delaygen generates that type at build time:
//
//   - You point it at a Go file and an interface name.
//   - It generates a Lazy<Iface> wrapper in the same package:
//     - every interface method forces the handle and delegates to the
//       produced value
//     - an init() registers the wrapper's factory in the shared proxy
//       registry, keyed by the interface's reflect.Type
//     - a compile-time assertion pins Lazy<Iface> to the interface
//
// There is no runtime reflection over method sets and no universal
// interception: the wrapper supports exactly the interface you name.
//
// # What is never forwarded
//
// Construction is never forwarded — wrapper instances are built by the
// registered factory, not by the wrapped type's constructor. On top of that,
// re-initialization-style methods (default: Reset, Init; configurable via
// -exclude) are generated as stubs that panic with
// proxy.ExcludedMethodError instead of delegating, so construction-like
// semantics can never run against a value that was never constructed through
// that path. Pass -exclude "" to forward everything.
//
// # Typical go:generate usage
//
// Put this in the Go file that declares the interface:
//
//	//go:generate go run github.com/sghaida/delayed/cmd/delaygen -src ./greeter.go -iface Greeter -out ./greeter_lazy.gen.go
//
// Then:
//
//	go generate ./...
//
// # Flags
//
//   - -src: Go file declaring the interface (embedded interfaces must be
//     declared in the same file; package-qualified embeds are rejected)
//   - -iface: interface name
//   - -out: output path for the generated .gen.go file
//   - -exclude: comma-separated method names to exclude from forwarding
//     (default "Reset,Init")
//   - -proxy-import: import path of the proxy package (override for forks)
//
// # Error surface of generated code
//
// A generated method cannot widen its signature, so a producer failure
// during forcing surfaces as a panic carrying the producer's error, exactly
// at the triggering call site. Producers that should fail softly belong on
// lazy.Value, where Force returns the error.
package main
