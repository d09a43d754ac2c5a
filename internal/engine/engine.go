package engine

import (
	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
	"github.com/hollowfield/warrensim/internal/entropy"
)

// Engine evaluates colony operations. It is stateless between calls; all
// game state lives in the ColonyState values passed through it.
type Engine struct {
	bal config.Balance
	rng entropy.Source
}

// New creates an engine with the given balance and random source.
func New(bal config.Balance, rng entropy.Source) *Engine {
	return &Engine{bal: bal, rng: rng}
}

// Balance returns the engine's balance configuration.
func (e *Engine) Balance() config.Balance { return e.bal }

// Capacity returns the housing capacity of a state.
func (e *Engine) Capacity(s ColonyState) int {
	return s.Houses * (e.bal.BaseCapacityPerHouse + s.CapacityBonusPerHouse)
}

// DayReport is the result of advancing one day.
type DayReport struct {
	State ColonyState

	Event          *catalog.Event // event drawn this day, nil for a quiet day
	CoinsEarned    int
	Births         int
	Losses         int    // rabbits removed by predation or epidemic end
	BrokenUpgrade  string // id of the upgrade that broke, empty if none
	EpidemicEnded  bool
	NewAchievement string // most recent achievement unlocked this day
}

// idSet builds a lookup set of the population's ids.
func idSet(pop []Individual) map[string]bool {
	set := make(map[string]bool, len(pop))
	for _, ind := range pop {
		set[ind.ID] = true
	}
	return set
}

// keepAlive filters an id list down to ids present in the alive set.
func keepAlive(ids []string, alive map[string]bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if alive[id] {
			out = append(out, id)
		}
	}
	return out
}

// pickRandomIDs draws up to n distinct ids from the population.
func pickRandomIDs(pop []Individual, n int, rng entropy.Source) map[string]bool {
	if n > len(pop) {
		n = len(pop)
	}
	idx := make([]int, len(pop))
	for i := range idx {
		idx[i] = i
	}
	// Fisher-Yates, stopping after n draws.
	picked := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		picked[pop[idx[i]].ID] = true
	}
	return picked
}

// removeIDs drops every individual whose id is in the set.
func removeIDs(pop []Individual, ids map[string]bool) []Individual {
	out := pop[:0]
	for _, ind := range pop {
		if !ids[ind.ID] {
			out = append(out, ind)
		}
	}
	return out
}
