package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Mod returns the non-negative remainder of x / m for positive m.
func Mod[T constraints.Float](x, m T) T {
	r := x - m*T(int64(x/m))
	if r < 0 {
		r += m
	}
	return r
}
