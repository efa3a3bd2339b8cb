package pcg

// PCG64 pairs two PCG32 generators and concatenates their outputs into 64-bit
// words. The two halves always advance together.
type PCG64 struct {
	low  PCG32
	high PCG32
}

// New returns a generator where both halves are seeded with seed on the
// default stream.
func New(seed uint64) *PCG64 {
	return NewPCG64(seed, seed, DefaultStream, DefaultStream)
}

// NewWithStream returns a generator where both halves are seeded with seed and
// request stream seq.
func NewWithStream(seed, seq uint64) *PCG64 {
	return NewPCG64(seed, seed, seq, seq)
}

// NewPCG64 is the general constructor. When seq1 and seq2 agree on their low
// 63 bits, seq2 is complemented so the halves never share a stream.
func NewPCG64(lowSeed, highSeed, seq1, seq2 uint64) *PCG64 {
	p := &PCG64{}
	p.Seed(lowSeed, highSeed, seq1, seq2)
	return p
}

// Seed reinitializes the generator in place using the same rules as NewPCG64.
func (p *PCG64) Seed(lowSeed, highSeed, seq1, seq2 uint64) {
	mask := ^uint64(0) >> 1
	if seq1&mask == seq2&mask {
		seq2 = ^seq2
	}
	p.low.Seed(lowSeed, seq1)
	p.high.Seed(highSeed, seq2)
}

// Next returns the next 64-bit word: the low half's output in the upper 32
// bits, the high half's in the lower 32 bits.
func (p *PCG64) Next() uint64 {
	return uint64(p.low.Next())<<32 | uint64(p.high.Next())
}

// Uint64 is Next under the name math/rand/v2.Source expects.
func (p *PCG64) Uint64() uint64 {
	return p.Next()
}

// Uint32 returns the upper half of the next word.
func (p *PCG64) Uint32() uint32 {
	return uint32(p.Next() >> 32)
}

// Streams reports the odd increments of the low and high halves.
func (p *PCG64) Streams() (low, high uint64) {
	return p.low.Stream(), p.high.Stream()
}

// Bounded returns a uniformly distributed value in [0, bound). A zero bound
// returns 0.
func (p *PCG64) Bounded(bound uint64) uint64 {
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

// Advance skips delta words.
func (p *PCG64) Advance(delta uint64) {
	p.low.Advance(delta)
	p.high.Advance(delta)
}

// Retreat rewinds delta words.
func (p *PCG64) Retreat(delta uint64) {
	p.Advance(-delta)
}
