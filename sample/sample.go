// Package sample draws values from common distributions using any source of
// 64-bit words, typically a *pcg.PCG64.
//
// Every function consumes words from the source in a fixed order, so the same
// seed and the same sequence of calls always produce the same samples.
// Precondition violations (empty option sets, mismatched vector lengths) are
// programming errors and panic with one of the sentinel errors below.
package sample

import (
	"errors"
	"fmt"
)

// Source produces uniformly distributed 64-bit words. *pcg.PCG64 and
// math/rand/v2 sources satisfy it.
type Source interface {
	Uint64() uint64
}

var (
	// ErrEmpty is the panic value when picking from an empty option set.
	ErrEmpty = errors.New("sample: empty option set")

	// ErrLengthMismatch is the panic value when interpolating vectors of
	// different dimensions.
	ErrLengthMismatch = errors.New("sample: vector length mismatch")

	// ErrWeights is the panic value when weights are negative, non-finite,
	// or sum to zero.
	ErrWeights = errors.New("sample: invalid weights")
)

func precondition(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
