// Package entropy provides the uniform random source the simulation draws
// from. The default source is crypto-backed; a seeded source exists for
// reproducible runs and tests.
package entropy

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source is the shared uniform random source. Every named draw in the
// simulation (event rolls, breeding rolls, infection picks, breakage)
// goes through a Source.
type Source interface {
	Float64() float64 // uniform in [0, 1)
	Intn(n int) int   // uniform in [0, n)
}

// Crypto is a Source backed by crypto/rand.
type Crypto struct{}

func (Crypto) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back anyway.
		return rand.Float64()
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

func (c Crypto) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.Float64() * float64(n))
}

// Default returns the crypto-backed source.
func Default() Source { return Crypto{} }

// seeded is a reproducible PCG-backed source.
type seeded struct{ r *rand.Rand }

// NewSeeded returns a deterministic Source for replayable simulations.
func NewSeeded(seed uint64) Source {
	return &seeded{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seeded) Float64() float64 { return s.r.Float64() }

func (s *seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Between returns a uniform draw in [lo, hi).
func Between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// IntBetween returns a uniform draw in [lo, hi] inclusive.
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
