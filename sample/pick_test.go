package sample_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/seededrand/internal/statistics"
	"github.com/lox/seededrand/pcg"
	"github.com/lox/seededrand/sample"
)

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestPickOneEmptyPanics(t *testing.T) {
	err := recoverError(func() {
		sample.PickOne(pcg.New(1), []string{})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sample.ErrEmpty))

	err = recoverError(func() {
		sample.PickOne[int](pcg.New(1), nil)
	})
	assert.True(t, errors.Is(err, sample.ErrEmpty))

	err = recoverError(func() {
		sample.Index(pcg.New(1), 0)
	})
	assert.True(t, errors.Is(err, sample.ErrEmpty))
}

func TestPickOneDeterministic(t *testing.T) {
	options := []string{"red", "green", "blue", "amber"}
	a, b := pcg.New(0x2288), pcg.New(0x2288)
	for i := 0; i < 100; i++ {
		require.Equal(t, sample.PickOne(a, options), sample.PickOne(b, options))
	}
}

func TestPickOneSingle(t *testing.T) {
	assert.Equal(t, "only", sample.PickOne(pcg.New(9), []string{"only"}))
	assert.Equal(t, 5, sample.Pick(pcg.New(9), 5))
}

func TestIndexUniform(t *testing.T) {
	src := pcg.New(3)
	counts := make([]int, 6)
	for i := 0; i < 60000; i++ {
		counts[sample.Index(src, 6)]++
	}
	res, err := statistics.ChiSquareUniform(counts)
	require.NoError(t, err)
	assert.False(t, res.Reject(0.01), "counts=%v chi=%f", counts, res.Statistic)
}

func TestPickFixedSet(t *testing.T) {
	src := pcg.New(21)
	seen := make(map[rune]bool)
	for i := 0; i < 500; i++ {
		seen[sample.Pick(src, 'a', 'b', 'c')] = true
	}
	assert.Len(t, seen, 3)
}

func TestPickWeighted(t *testing.T) {
	src := pcg.New(4)
	weights := []float64{0, 3, 1, 0}
	counts := make([]int, len(weights))
	for i := 0; i < 40000; i++ {
		counts[sample.PickWeighted(src, weights)]++
	}
	assert.Zero(t, counts[0])
	assert.Zero(t, counts[3])
	assert.InDelta(t, 0.75, float64(counts[1])/40000, 0.02)
}

func TestPickWeightedInvalid(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		want    error
	}{
		{"empty", nil, sample.ErrEmpty},
		{"all zero", []float64{0, 0}, sample.ErrWeights},
		{"negative", []float64{1, -1}, sample.ErrWeights},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := recoverError(func() { sample.PickWeighted(pcg.New(1), tt.weights) })
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestShufflePermutes(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	sample.Shuffle(pcg.New(12), s)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, s)

	again := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	sample.Shuffle(pcg.New(12), again)
	assert.Equal(t, s, again)
}
