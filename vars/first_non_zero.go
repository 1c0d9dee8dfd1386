package vars

// FirstNonZero returns the first value that is not the zero value of T.
// It is used to layer flag, config file and default values.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
