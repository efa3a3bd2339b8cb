package sample

import "math"

// Index returns a uniformly distributed index in [0, n). It panics with
// ErrEmpty when n <= 0.
func Index(src Source, n int) int {
	if n <= 0 {
		precondition(ErrEmpty, "index over %d options", n)
	}
	return int(bounded(src, uint64(n)))
}

// PickOne returns a uniformly chosen element of options. It panics with
// ErrEmpty when options is empty; there is no fallback element.
func PickOne[T any](src Source, options []T) T {
	return options[Index(src, len(options))]
}

// Pick chooses uniformly from a fixed set of options given inline.
func Pick[T any](src Source, first T, rest ...T) T {
	i := Index(src, len(rest)+1)
	if i == 0 {
		return first
	}
	return rest[i-1]
}

// PickWeighted returns an index chosen with probability proportional to its
// weight. Weights must be finite, non-negative and sum to more than zero.
func PickWeighted(src Source, weights []float64) int {
	if len(weights) == 0 {
		precondition(ErrEmpty, "no weights")
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			precondition(ErrWeights, "weight %d is %v", i, w)
		}
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		precondition(ErrWeights, "total weight %v", total)
	}

	// half-open roll so a zero weight at the end can never be chosen
	roll := float64(src.Uint64()>>11) / (1 << 53) * total
	cumulative := 0.0
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w
		last = i
		if roll < cumulative {
			return i
		}
	}
	return last
}

// Shuffle permutes s in place using Fisher-Yates.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := int(bounded(src, uint64(i+1)))
		s[i], s[j] = s[j], s[i]
	}
}
