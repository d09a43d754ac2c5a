package engine

import (
	"slices"

	"github.com/hollowfield/warrensim/internal/catalog"
)

// Upgrade degradation: once per day, with a small probability, one owned
// upgrade breaks and its effect is reversed. Tier upgrades step the tier
// down one level; generic upgrades have their accumulator contribution
// undone, floored at the neutral value. Broken upgrades stay purchasable
// at an inflated price; repurchasing repairs them.

// breakCandidates lists every currently breakable upgrade id: owned generic
// upgrades not already broken, plus the tier upgrades implied by the
// current food and water tiers.
func (e *Engine) breakCandidates(s ColonyState) []string {
	var out []string
	for _, id := range s.OwnedUpgrades {
		if !slices.Contains(s.BrokenUpgrades, id) {
			out = append(out, id)
		}
	}
	switch s.FoodTier {
	case catalog.FoodPellets:
		out = append(out, "pellets-upgrade")
	case catalog.FoodLettuce:
		out = append(out, "lettuce-upgrade")
	}
	if s.WaterTier == catalog.WaterPurified {
		out = append(out, "purified-water")
	}
	return out
}

// runBreakage rolls the daily breakage check and applies the reversal when
// it fires. Returns the broken upgrade id or "".
func (e *Engine) runBreakage(s *ColonyState) string {
	candidates := e.breakCandidates(*s)
	if len(candidates) <= e.bal.MinBreakCandidates {
		return ""
	}
	if e.rng.Float64() >= e.bal.BreakChance {
		return ""
	}
	id := candidates[e.rng.Intn(len(candidates))]
	if !slices.Contains(s.BrokenUpgrades, id) {
		s.BrokenUpgrades = append(s.BrokenUpgrades, id)
	}
	s.BreakCount++
	e.reverseUpgrade(s, id)
	return id
}

// reverseUpgrade undoes the named upgrade's effect. Tier upgrades step the
// tier down; generic upgrades divide out their multipliers and subtract
// their bonuses, never crossing the neutral value, and leave the owned set.
func (e *Engine) reverseUpgrade(s *ColonyState, id string) {
	switch id {
	case "pellets-upgrade":
		if s.FoodTier == catalog.FoodPellets {
			s.FoodTier = catalog.FoodTierDown(s.FoodTier)
		}
		return
	case "lettuce-upgrade":
		if s.FoodTier == catalog.FoodLettuce {
			s.FoodTier = catalog.FoodTierDown(s.FoodTier)
		}
		return
	case "purified-water":
		if s.WaterTier == catalog.WaterPurified {
			s.WaterTier = catalog.WaterNormal
		}
		return
	}

	item, ok := catalog.ItemByID(id)
	if !ok {
		return
	}
	eff := item.Effect
	if eff.CoinMultiplier > 0 {
		s.CoinMultiplier = floorAt(s.CoinMultiplier/eff.CoinMultiplier, 1)
	}
	if eff.BreedingBonusMultiplier > 0 {
		s.BreedingBonusMultiplier = floorAt(s.BreedingBonusMultiplier/eff.BreedingBonusMultiplier, 1)
	}
	if eff.FoodConsumptionMultiplier > 0 {
		s.FoodConsumptionMultiplier = capAt(s.FoodConsumptionMultiplier/eff.FoodConsumptionMultiplier, 1)
	}
	if eff.WaterConsumptionMultiplier > 0 {
		s.WaterConsumptionMultiplier = capAt(s.WaterConsumptionMultiplier/eff.WaterConsumptionMultiplier, 1)
	}
	if eff.CapacityBonusPerHouse > 0 {
		s.CapacityBonusPerHouse = maxInt(0, s.CapacityBonusPerHouse-eff.CapacityBonusPerHouse)
	}
	if eff.PassiveCoinsPerDay > 0 {
		s.PassiveCoinsPerDay = maxInt(0, s.PassiveCoinsPerDay-eff.PassiveCoinsPerDay)
	}
	if eff.PassiveFoodPerDay > 0 {
		s.PassiveFoodPerDay = maxInt(0, s.PassiveFoodPerDay-eff.PassiveFoodPerDay)
	}
	if eff.PassiveWaterPerDay > 0 {
		s.PassiveWaterPerDay = maxInt(0, s.PassiveWaterPerDay-eff.PassiveWaterPerDay)
	}
	if eff.ShopDiscountBonus > 0 {
		s.ShopDiscountBonus = floorAt(s.ShopDiscountBonus-eff.ShopDiscountBonus, 0)
	}
	s.OwnedUpgrades = slices.DeleteFunc(s.OwnedUpgrades, func(u string) bool { return u == id })
}

func floorAt(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

func capAt(v, hi float64) float64 {
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
