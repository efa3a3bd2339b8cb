// Package pcg implements the permuted congruential generators that drive all
// sampling in seededrand.
//
// The generators are deterministic: a given seed and stream produce the same
// words on every platform and every run. They are not safe for concurrent use
// and are not suitable for cryptographic purposes.
package pcg

const (
	// Multiplier is the 64-bit LCG multiplier shared by every generator.
	Multiplier = 6364136223846793005

	// DefaultStream is the stream requested by New when the caller has no
	// preference.
	DefaultStream = 0xda3e39cb94b95bdb
)

// PCG32 is a single-stream PCG-XSH-RS generator: 64 bits of LCG state and a
// 32-bit output permuted with a data-dependent xor-shift.
type PCG32 struct {
	state  uint64
	stream uint64
}

// NewPCG32 creates a generator seeded with state0 on the given stream.
func NewPCG32(state0, stream uint64) *PCG32 {
	p := &PCG32{}
	p.Seed(state0, stream)
	return p
}

// Seed reinitializes the generator in place (avoids allocation).
func (p *PCG32) Seed(state0, stream uint64) {
	p.stream = stream<<1 | 1
	p.state = 0
	p.step()
	p.state += state0
	p.step()
}

// Stream returns the odd increment the generator was built with.
func (p *PCG32) Stream() uint64 {
	return p.stream
}

// Next returns the next 32-bit word.
func (p *PCG32) Next() uint32 {
	current := p.state
	p.step()

	// top three bits of the old state pick a shift in 22..29
	shift := 22 + current>>61
	return uint32((current ^ current>>22) >> shift)
}

// Bounded returns a uniformly distributed value in [0, bound). A zero bound
// returns 0.
func (p *PCG32) Bounded(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	threshold := -bound % bound
	for {
		r := p.Next()
		if r >= threshold {
			return r % bound
		}
	}
}

// Advance moves the generator delta steps forward in O(log delta).
func (p *PCG32) Advance(delta uint64) {
	p.state = advanceLCG(p.state, delta, Multiplier, p.stream)
}

// Retreat moves the generator delta steps backward.
func (p *PCG32) Retreat(delta uint64) {
	p.Advance(-delta)
}

func (p *PCG32) step() {
	p.state = p.state*Multiplier + p.stream
}

// advanceLCG applies the affine map state*mult+plus delta times by repeated
// squaring (Brown, "Random Number Generation with Arbitrary Stride").
func advanceLCG(state, delta, mult, plus uint64) uint64 {
	accMult := uint64(1)
	accPlus := uint64(0)
	for delta > 0 {
		if delta&1 != 0 {
			accMult *= mult
			accPlus = accPlus*mult + plus
		}
		plus = (mult + 1) * plus
		mult *= mult
		delta >>= 1
	}
	return accMult*state + accPlus
}
