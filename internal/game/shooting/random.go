package shooting

import (
	"math/rand/v2"
	"time"
)

// RandomSource draws uniformly distributed values.
type RandomSource interface {
	// Uniform returns a value in [lo, hi]. lo must not exceed hi.
	Uniform(lo, hi float32) float32
}

// PCGSource is a RandomSource backed by a PCG generator.
type PCGSource struct {
	rng *rand.Rand
}

// NewPCGSource returns a generator with a fixed seed. The same seed always
// produces the same sequence.
func NewPCGSource(seed uint64) *PCGSource {
	return &PCGSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededSource seeds a generator from the wall clock.
func NewTimeSeededSource() *PCGSource {
	return NewPCGSource(uint64(time.Now().UnixNano()))
}

// Uniform implements RandomSource.
func (s *PCGSource) Uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}
