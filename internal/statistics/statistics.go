// Package statistics summarises batches of samples and tests them against
// reference distributions.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary accumulates float64 samples.
type Summary struct {
	Count  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Kept for median/percentile/goodness-of-fit

	min, max float64
}

// Add incorporates a new sample.
func (s *Summary) Add(v float64) {
	if s.Count == 0 || v < s.min {
		s.min = v
	}
	if s.Count == 0 || v > s.max {
		s.max = v
	}
	s.Count++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Min returns the smallest sample seen, or 0 when empty.
func (s *Summary) Min() float64 { return s.min }

// Max returns the largest sample seen, or 0 when empty.
func (s *Summary) Max() float64 { return s.max }

// Mean returns the arithmetic mean
func (s *Summary) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance
func (s *Summary) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// StdDev returns the sample standard deviation
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean using
// the t-distribution.
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	if s.Count < 2 {
		return mean, mean
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(s.Count - 1)}
	margin := t.Quantile(0.975) * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median sample
func (s *Summary) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the linearly interpolated value at p (0.0 to 1.0)
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	if index <= 0 {
		return sorted[0]
	}
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accumulated state is internally consistent.
func (s *Summary) Validate() error {
	if s.Count <= 0 {
		return fmt.Errorf("invalid sample count: %d", s.Count)
	}
	if len(s.Values) != s.Count {
		return fmt.Errorf("values array length (%d) does not match sample count (%d)",
			len(s.Values), s.Count)
	}
	for i, v := range s.Values {
		if math.IsNaN(v) {
			return fmt.Errorf("sample %d is NaN", i)
		}
	}
	return nil
}

func (s *Summary) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}
