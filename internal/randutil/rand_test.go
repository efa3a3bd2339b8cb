package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/seededrand/seed"
)

func TestFromSpecDeterministic(t *testing.T) {
	a, b := FromSpec(seed.Namespace(42)), FromSpec(seed.Namespace(42))
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
	assert.NotEqual(t, FromSpec(seed.Namespace(1)).Uint64(), FromSpec(seed.Namespace(2)).Uint64())
}

func TestFromSpecSharesWordStream(t *testing.T) {
	r := FromSpec(seed.Fixed(0x2288).WithStream(0))
	assert.Equal(t, uint64(0x9361e1e0d2e4ecd5), r.Uint64())
	assert.Equal(t, uint64(0x2e0124112e8673f7), r.Uint64())
}

func TestPermIsPermutation(t *testing.T) {
	p := FromSpec(seed.Namespace(7)).Perm(20)
	seen := make(map[int]bool)
	for _, v := range p {
		seen[v] = true
	}
	assert.Len(t, seen, 20)
}
