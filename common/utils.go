package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Deref returns the value behind p, or def when p is nil.
// This is how optional glTF JSON fields (decoded as pointers) collapse onto their defaults.
//
// Parameters:
//   - p: the optional value
//   - def: the default used when p is nil
//
// Returns:
//   - T: *p or def
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// BoolToFloat maps false to 0 and true to 1, the encoding used by toggle sockets.
func BoolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
