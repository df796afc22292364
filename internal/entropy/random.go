// Package entropy routes every stochastic draw in the simulation through a
// single source, so tests can substitute a deterministic sequence.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source supplies the random draws used by the simulation: sales noise,
// AI trigger probabilities, economic shocks, city generation.
type Source interface {
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

type mathSource struct {
	rng *rand.Rand
}

func (s *mathSource) Float64() float64 { return s.rng.Float64() }
func (s *mathSource) Intn(n int) int   { return s.rng.Intn(n) }

// New returns a reproducible source for the given seed. Seed 0 draws a seed
// from crypto/rand instead, preserving the nondeterminism of a fresh game.
func New(seed int64) Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &mathSource{rng: rand.New(rand.NewSource(seed))}
}

// cryptoSeed reads a seed from crypto/rand. Falls back to a fixed value if
// the system source is unavailable, which should never happen.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

// Sequence replays a fixed list of float values. Intn scales the next float
// by n. Draws wrap around, so short sequences can drive long scenarios.
type Sequence struct {
	Values []float64
	next   int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

func (s *Sequence) Intn(n int) int {
	return int(s.Float64() * float64(n))
}
