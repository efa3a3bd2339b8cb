package sample

import (
	"math"

	"golang.org/x/exp/constraints"
)

// maxUnit is 2^53-1, the largest integer whose every predecessor is exactly
// representable as a float64.
const maxUnit = 1<<53 - 1

// Unit returns a float64 in the closed interval [0, 1].
func Unit(src Source) float64 {
	return float64(src.Uint64()>>11) / maxUnit
}

// UniformReal returns a float64 in the closed interval between lo and hi,
// whichever order they are given in. When lo == hi it returns lo exactly.
func UniformReal(src Source, lo, hi float64) float64 {
	t := Unit(src)
	v := lo*(1-t) + hi*t

	min, max := lo, hi
	if min > max {
		min, max = max, min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// UniformInt returns an integer in the closed interval between lo and hi.
func UniformInt[T constraints.Integer](src Source, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	// span wraps to 0 when the range covers every uint64
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 {
		return T(src.Uint64())
	}
	return lo + T(bounded(src, span))
}

// bounded returns a value in [0, bound) by rejection so every residue is
// equally likely.
func bounded(src Source, bound uint64) uint64 {
	threshold := -bound % bound
	for {
		r := src.Uint64()
		if r >= threshold {
			return r % bound
		}
	}
}

// Angle returns an angle in radians in [0, 2π].
func Angle(src Source) float64 {
	return UniformReal(src, 0, 2*math.Pi)
}
