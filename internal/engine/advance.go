package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/entropy"
)

// AdvanceDay runs one full day of the simulation. It always succeeds;
// starvation shows up as clamped resources, never as an error. The order
// is fixed: event draw, epidemic tick, consumption and earnings against
// the post-epidemic population, breeding, event effects, breakage,
// passives, resource settlement, pruning, achievements.
func (e *Engine) AdvanceDay(s ColonyState) DayReport {
	out := s.Clone()
	var rep DayReport

	event := e.drawEvent(out)

	// The epidemic timer always moves, even on starved days, so outbreaks
	// cannot be stalled. Removal resolves before the day's consumption.
	removed, ended := e.advanceEpidemic(&out)
	rep.Losses += removed
	rep.EpidemicEnded = ended

	headcount := len(out.Population)
	foodNeeded := int(math.Ceil(float64(headcount) * float64(e.bal.FoodPerHead) * out.FoodConsumptionMultiplier))
	waterPenalty := 1.0
	if out.EpidemicActive && out.FoodTier == catalog.FoodCarrots {
		waterPenalty = e.bal.EpidemicWaterFactor
	}
	waterNeeded := int(math.Ceil(float64(headcount) * float64(e.bal.WaterPerHead) * out.WaterConsumptionMultiplier * waterPenalty))

	coinsEarned := e.earnings(out)

	births := e.breed(&out, event)

	evFood, evWater, evCoins, evHouses, evRabbits := 0, 0, 0, 0, 0
	if event != nil {
		eff := event.Effect
		evCoins, evFood, evWater, evHouses = eff.Coins, eff.Food, eff.Water, eff.Houses

		if event.ID == catalog.EventRabbitFever && !out.EpidemicActive {
			e.startEpidemic(&out)
		}

		if eff.Rabbits > 0 {
			room := e.Capacity(out) - len(out.Population)
			toAdd := min(eff.Rabbits, room)
			for i := 0; i < toAdd; i++ {
				out.Population = append(out.Population, Individual{ID: uuid.NewString(), Breed: catalog.BreedCommon})
			}
			if toAdd > 0 {
				evRabbits = toAdd
			}
		}

		if event.Predatory() {
			taken := e.predation(&out, *event)
			rep.Losses += taken
		}
	}

	rep.BrokenUpgrade = e.runBreakage(&out)

	out.Food = maxInt(0, out.Food-foodNeeded+evFood+out.PassiveFoodPerDay)
	out.Water = maxInt(0, out.Water-waterNeeded+evWater+out.PassiveWaterPerDay)
	out.Coins = maxInt(0, out.Coins+coinsEarned+evCoins+out.PassiveCoinsPerDay)
	out.Houses += evHouses
	out.Day++
	out.TotalBorn += births + evRabbits
	out.TotalCoinsEarned += coinsEarned

	pruneInfection(&out)

	newly := e.applyAchievements(&out)
	if len(newly) > 0 {
		rep.NewAchievement = newly[len(newly)-1]
	}

	out.PendingEvent = event

	rep.State = out
	rep.Event = event
	rep.CoinsEarned = coinsEarned
	rep.Births = births
	return rep
}

// drawEvent rolls the daily event: 70% quiet, otherwise a rarity tier
// (60/30/10) and a uniform pick within it. Suppression rules discard the
// draw: no second fever while one is active, and no fever or predation
// while the colony is fragile.
func (e *Engine) drawEvent(s ColonyState) *catalog.Event {
	if e.rng.Float64() >= e.bal.EventChance {
		return nil
	}
	roll := e.rng.Float64()
	rarity := catalog.RarityRare
	switch {
	case roll < 0.6:
		rarity = catalog.RarityCommon
	case roll < 0.9:
		rarity = catalog.RarityUncommon
	}
	pool := catalog.EventsByRarity(rarity)
	if len(pool) == 0 {
		return nil
	}
	ev := pool[e.rng.Intn(len(pool))]

	if ev.ID == catalog.EventRabbitFever && s.EpidemicActive {
		return nil
	}
	if len(s.Population) < e.bal.FragileColonySize && (ev.ID == catalog.EventRabbitFever || ev.Predatory()) {
		return nil
	}
	return &ev
}

// earnings computes the day's coin income: per-head base scaled by breed,
// food efficiency, the coin multiplier and the time bonus, floored.
func (e *Engine) earnings(s ColonyState) int {
	var base float64
	for _, ind := range s.Population {
		base += float64(e.bal.CoinsPerHead) * catalog.BreedByTag(ind.Breed).CoinMultiplier
	}
	timeBonus := math.Min(e.bal.TimeBonusCap,
		math.Floor(float64(s.Day+1)/float64(e.bal.TimeBonusStepDays))*e.bal.TimeBonusStep)
	total := base * catalog.FoodEfficiency(s.FoodTier) * s.CoinMultiplier * (1 + timeBonus)
	return int(math.Floor(total))
}

// breed runs the daily breeding roll. Newborns inherit the breed of a
// uniformly-random parent from the pre-birth population.
func (e *Engine) breed(s *ColonyState, event *catalog.Event) int {
	capacity := e.Capacity(*s)
	count := len(s.Population)
	if count < 2 || count >= capacity {
		return 0
	}
	if e.rng.Float64() >= e.bal.BreedingChance {
		return 0
	}

	mult := s.BreedingBonusMultiplier
	if s.WaterTier == catalog.WaterPurified {
		mult *= e.bal.PurifiedBreedingFactor
	}
	if event != nil && event.Effect.BreedingFactor != 0 {
		mult *= event.Effect.BreedingFactor
	}
	if s.EpidemicActive {
		mult *= e.bal.EpidemicBreedingFactor
	}

	toAdd := int(math.Floor(mult))
	if toAdd > capacity-count {
		toAdd = capacity - count
	}
	if toAdd <= 0 {
		return 0
	}
	for i := 0; i < toAdd; i++ {
		parent := s.Population[e.rng.Intn(count)]
		s.Population = append(s.Population, Individual{ID: uuid.NewString(), Breed: parent.Breed})
	}
	return toAdd
}

// predation removes a random fraction of the population per the event's
// declared range (at least one), then prunes infection references.
func (e *Engine) predation(s *ColonyState, ev catalog.Event) int {
	if len(s.Population) == 0 {
		return 0
	}
	pct := entropy.Between(e.rng, ev.PredationMin, ev.PredationMax)
	n := int(math.Floor(float64(len(s.Population)) * pct))
	if n < 1 {
		n = 1
	}
	ids := pickRandomIDs(s.Population, n, e.rng)
	before := len(s.Population)
	s.Population = removeIDs(s.Population, ids)
	pruneInfection(s)
	return before - len(s.Population)
}

// DismissEvent clears the pending event notification.
func (e *Engine) DismissEvent(s ColonyState) ColonyState {
	out := s.Clone()
	out.PendingEvent = nil
	return out
}
