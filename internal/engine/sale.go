package engine

import (
	"math"

	"github.com/hollowfield/warrensim/internal/entropy"
)

// SellPopulation sells a uniformly-random 10-50% of the colony (at least
// one rabbit) for a fixed per-head price. Sales are only allowed on sale
// window days and at most once per day.
func (e *Engine) SellPopulation(s ColonyState) (ColonyState, int, error) {
	if len(s.Population) == 0 {
		return s, 0, ErrEmptyPopulation
	}
	if s.Day%e.bal.SaleWindowDays != 0 {
		return s, 0, ErrNotSaleWindow
	}
	if s.LastSaleDay == s.Day {
		return s, 0, ErrAlreadySoldToday
	}

	out := s.Clone()
	pct := entropy.Between(e.rng, e.bal.SaleMinFraction, e.bal.SaleMaxFraction)
	n := int(math.Floor(float64(len(out.Population)) * pct))
	if n < 1 {
		n = 1
	}
	ids := pickRandomIDs(out.Population, n, e.rng)
	before := len(out.Population)
	out.Population = removeIDs(out.Population, ids)
	sold := before - len(out.Population)

	proceeds := sold * e.bal.SalePricePerHead
	out.Coins += proceeds
	out.TotalCoinsEarned += proceeds
	out.LastSaleDay = out.Day

	pruneInfection(&out)
	e.applyAchievements(&out)
	return out, sold, nil
}

// NextSaleDay returns the next day on which selling is allowed.
func (e *Engine) NextSaleDay(s ColonyState) int {
	w := e.bal.SaleWindowDays
	if s.Day%w == 0 && s.LastSaleDay != s.Day {
		return s.Day
	}
	return s.Day + (w - s.Day%w)
}
