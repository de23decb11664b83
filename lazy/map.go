package lazy

// Map derives a new handle whose value is fn applied to v's value.
//
// Neither v nor the derived handle is forced here: forcing the derived
// handle forces v first, then applies fn. If forcing v fails, the derived
// handle fails with the same error and, per Value's retry semantics, caches
// nothing.
func Map[T any, U any](v *Value[T], fn func(T) U) *Value[U] {
	return NewErr(func() (U, error) {
		val, err := v.Force()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(val), nil
	})
}

// MapErr is Map for transforms that may themselves fail.
func MapErr[T any, U any](v *Value[T], fn func(T) (U, error)) *Value[U] {
	return NewErr(func() (U, error) {
		val, err := v.Force()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(val)
	})
}
