package engine

import "math"

// The epidemic is a fixed-duration adverse sub-event. Dormant → Active on
// drawing the rabbit-fever event; Active decrements once per day regardless
// of resource sufficiency; at zero days every still-infected rabbit is
// removed. Isolation changes nothing about the timer; curing ends the
// epidemic immediately for a coin cost.

// startEpidemic infects a random 10-50% of the population (at least one)
// and arms the countdown. Caller guarantees the epidemic is dormant.
func (e *Engine) startEpidemic(s *ColonyState) {
	if len(s.Population) == 0 {
		return
	}
	frac := e.bal.InfectMinFraction + e.rng.Float64()*(e.bal.InfectMaxFraction-e.bal.InfectMinFraction)
	count := int(math.Floor(float64(len(s.Population)) * frac))
	if count < 1 {
		count = 1
	}
	picked := pickRandomIDs(s.Population, count, e.rng)
	infected := make([]string, 0, len(picked))
	for _, ind := range s.Population {
		if picked[ind.ID] {
			infected = append(infected, ind.ID)
		}
	}
	s.EpidemicActive = true
	s.InfectedIDs = infected
	s.IsolatedIDs = []string{}
	s.EpidemicDaysLeft = e.bal.EpidemicDurationDays
	s.IsolationChosen = false
}

// advanceEpidemic ticks the countdown by one day. On reaching zero it
// removes all infected rabbits and resolves to dormant, crediting a
// survival. Returns the number of rabbits removed.
func (e *Engine) advanceEpidemic(s *ColonyState) (removed int, ended bool) {
	if !s.EpidemicActive {
		return 0, false
	}
	s.EpidemicDaysLeft--
	if s.EpidemicDaysLeft > 0 {
		return 0, false
	}
	infected := make(map[string]bool, len(s.InfectedIDs))
	for _, id := range s.InfectedIDs {
		infected[id] = true
	}
	before := len(s.Population)
	s.Population = removeIDs(s.Population, infected)
	s.SurvivalCount++
	resetEpidemic(s)
	return before - len(s.Population), true
}

// pruneInfection drops infection references to rabbits no longer in the
// population. If the infected set empties while active, the epidemic
// resolves to dormant without a survival credit (nothing was cured).
func pruneInfection(s *ColonyState) {
	if !s.EpidemicActive {
		return
	}
	alive := idSet(s.Population)
	s.InfectedIDs = keepAlive(s.InfectedIDs, alive)
	s.IsolatedIDs = keepAlive(s.IsolatedIDs, alive)
	if len(s.InfectedIDs) == 0 {
		resetEpidemic(s)
	}
}

func resetEpidemic(s *ColonyState) {
	s.EpidemicActive = false
	s.InfectedIDs = []string{}
	s.IsolatedIDs = []string{}
	s.EpidemicDaysLeft = 0
	s.IsolationChosen = false
}

// ChooseIsolate marks every infected rabbit as isolated. The 30-day timer
// is unchanged; isolation only records the player's route.
func (e *Engine) ChooseIsolate(s ColonyState) ColonyState {
	out := s.Clone()
	if !out.EpidemicActive {
		return out
	}
	out.IsolatedIDs = append(out.IsolatedIDs[:0], out.InfectedIDs...)
	out.IsolationChosen = true
	return out
}

// ChooseCure ends the epidemic immediately without removing any rabbit,
// deducting floor(coins × costFraction). The fraction is clamped to [0, 1].
func (e *Engine) ChooseCure(s ColonyState, costFraction float64) ColonyState {
	out := s.Clone()
	if !out.EpidemicActive {
		return out
	}
	frac := math.Min(1, math.Max(0, costFraction))
	cost := int(math.Floor(float64(out.Coins) * frac))
	out.Coins -= cost
	if out.Coins < 0 {
		out.Coins = 0
	}
	out.SurvivalCount++
	resetEpidemic(&out)
	return out
}
