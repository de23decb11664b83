package lazy

import "iter"

// Seq returns an iterator over the elements of a deferred slice.
//
// Obtaining the iterator does not force v. Forcing happens when the range
// loop (or pull function) first asks for an element. If forcing fails, the
// iterator panics with the producer's error, mirroring MustForce.
func Seq[S ~[]E, E any](v *Value[S]) iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range v.MustForce() {
			if !yield(e) {
				return
			}
		}
	}
}

// Pull converts Seq(v) into a pull-style iterator.
//
// v is forced by the first next call, not by Pull itself, so a handle can be
// converted and passed around without triggering evaluation. Callers must
// call stop when finished with the iterator.
func Pull[S ~[]E, E any](v *Value[S]) (next func() (E, bool), stop func()) {
	return iter.Pull(Seq(v))
}
