// Package randutil adapts seededrand generators to math/rand/v2 so code that
// wants a *rand.Rand (NormFloat64, Perm) shares the same reproducible word
// stream.
package randutil

import (
	rand "math/rand/v2"

	"github.com/lox/seededrand/seed"
)

// FromSpec returns a *rand.Rand over a fresh generator for spec.
func FromSpec(spec seed.Spec) *rand.Rand {
	return rand.New(spec.New())
}
