package engine

import (
	"github.com/google/uuid"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
)

// script is a deterministic entropy source fed from fixed queues. Exhausted
// float queues return 0.99 so no chance-gated roll fires by accident;
// exhausted int queues return 0.
type script struct {
	floats []float64
	ints   []int
}

func (s *script) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *script) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := 0
	if len(s.ints) > 0 {
		v = s.ints[0]
		s.ints = s.ints[1:]
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func testEngine(src *script) *Engine {
	return New(config.Default(), src)
}

func addRabbits(s *ColonyState, n int, breed catalog.BreedTag) {
	for i := 0; i < n; i++ {
		s.Population = append(s.Population, Individual{ID: uuid.NewString(), Breed: breed})
	}
}
