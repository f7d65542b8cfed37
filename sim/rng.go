package sim

import (
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two models with the same SimulationKey, identical configuration and the
// same reset discipline MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === RandomStream ===

// RandomStream is the single seeded source of randomness for a model and
// every clone made from it. Draws advance a shared cursor, so clones that
// share a stream see fresh variates; only Reseed rewinds it.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type RandomStream struct {
	key SimulationKey
	rng *rand.Rand
}

// NewRandomStream creates a RandomStream positioned at the start of the
// sequence for key.
func NewRandomStream(key SimulationKey) *RandomStream {
	return &RandomStream{
		key: key,
		rng: rand.New(rand.NewSource(int64(key))),
	}
}

// Normal draws a normal variate with the given mean and standard deviation.
func (s *RandomStream) Normal(mean, stdDev float64) float64 {
	return s.rng.NormFloat64()*stdDev + mean
}

// Reseed rewinds the stream to the start of its original sequence.
func (s *RandomStream) Reseed() {
	s.rng.Seed(int64(s.key))
}

// Key returns the SimulationKey used to create this stream.
func (s *RandomStream) Key() SimulationKey {
	return s.key
}
