package engine

import (
	"slices"

	"github.com/google/uuid"

	"github.com/hollowfield/warrensim/internal/catalog"
)

// Purchase validates and applies a shop purchase. Validation runs in full
// before any mutation; the first violated rule comes back as a typed
// rejection and the input state is returned unchanged. Upgrades are
// non-repeatable, so qty is forced to 1 for them.
func (e *Engine) Purchase(s ColonyState, item catalog.Item, qty int) (ColonyState, error) {
	if qty < 1 {
		qty = 1
	}
	if item.Type == catalog.ItemUpgrade {
		qty = 1
	}

	price := e.Price(s, item, qty)
	if err := e.validatePurchase(s, item, qty, price); err != nil {
		return s, err
	}

	out := s.Clone()
	wasBroken := slices.Contains(out.BrokenUpgrades, item.ID)

	out.Coins -= price
	out.Food += item.Effect.Food * qty
	out.Water += item.Effect.Water * qty
	out.Houses += item.Effect.Houses * qty

	if n := item.Effect.Rabbits * qty; n > 0 {
		breed := item.Breed
		if breed == "" {
			breed = catalog.BreedCommon
		}
		for i := 0; i < n; i++ {
			out.Population = append(out.Population, Individual{ID: uuid.NewString(), Breed: breed})
		}
	}

	if item.Effect.FoodTier != "" {
		out.FoodTier = item.Effect.FoodTier
	}
	if item.Effect.WaterTier != "" {
		out.WaterTier = item.Effect.WaterTier
	}

	if item.Type == catalog.ItemUpgrade && !item.Effect.TierChange() {
		eff := item.Effect
		if eff.CoinMultiplier > 0 {
			out.CoinMultiplier *= eff.CoinMultiplier
		}
		if eff.BreedingBonusMultiplier > 0 {
			out.BreedingBonusMultiplier *= eff.BreedingBonusMultiplier
		}
		if eff.FoodConsumptionMultiplier > 0 {
			out.FoodConsumptionMultiplier *= eff.FoodConsumptionMultiplier
		}
		if eff.WaterConsumptionMultiplier > 0 {
			out.WaterConsumptionMultiplier *= eff.WaterConsumptionMultiplier
		}
		out.CapacityBonusPerHouse += eff.CapacityBonusPerHouse
		out.PassiveCoinsPerDay += eff.PassiveCoinsPerDay
		out.PassiveFoodPerDay += eff.PassiveFoodPerDay
		out.PassiveWaterPerDay += eff.PassiveWaterPerDay
		if eff.ShopDiscountBonus > 0 {
			out.ShopDiscountBonus = capAt(out.ShopDiscountBonus+eff.ShopDiscountBonus, e.bal.ShopDiscountCap)
		}
		if !slices.Contains(out.OwnedUpgrades, item.ID) {
			out.OwnedUpgrades = append(out.OwnedUpgrades, item.ID)
		}
	}

	if item.Type == catalog.ItemUpgrade && wasBroken {
		out.BrokenUpgrades = slices.DeleteFunc(out.BrokenUpgrades, func(id string) bool { return id == item.ID })
		out.RepairCount++
	}

	out.recordSpend(price)
	e.applyAchievements(&out)
	return out, nil
}

// validatePurchase checks every purchase rule without mutating anything.
func (e *Engine) validatePurchase(s ColonyState, item catalog.Item, qty, price int) error {
	if s.Coins < price {
		return ErrInsufficientFunds
	}

	if n := item.Effect.Rabbits * qty; n > 0 {
		if len(s.Population)+n > e.Capacity(s) {
			return ErrCapacityExceeded
		}
	}

	if item.Type != catalog.ItemUpgrade {
		return nil
	}

	if item.Effect.FoodTier != "" {
		current := catalog.FoodTierRank(s.FoodTier)
		target := catalog.FoodTierRank(item.Effect.FoodTier)
		if target <= current {
			return ErrAlreadyOwned
		}
		// Tiers upgrade one step at a time.
		if target != current+1 {
			return ErrPrerequisiteUnmet
		}
	}
	if item.Effect.WaterTier != "" && s.WaterTier != catalog.WaterNormal {
		return ErrAlreadyOwned
	}
	if !item.Effect.TierChange() && slices.Contains(s.OwnedUpgrades, item.ID) {
		return ErrAlreadyOwned
	}

	req := item.Requires
	if req.MinDay > 0 && s.Day < req.MinDay {
		return ErrPrerequisiteUnmet
	}
	if req.MinHouses > 0 && s.Houses < req.MinHouses {
		return ErrPrerequisiteUnmet
	}
	if req.FoodTierAtLeast != "" && catalog.FoodTierRank(s.FoodTier) < catalog.FoodTierRank(req.FoodTierAtLeast) {
		return ErrPrerequisiteUnmet
	}
	if req.WaterTier != "" && s.WaterTier != req.WaterTier {
		return ErrPrerequisiteUnmet
	}
	if req.Upgrade != "" && !slices.Contains(s.OwnedUpgrades, req.Upgrade) {
		return ErrPrerequisiteUnmet
	}
	return nil
}

// recordSpend accumulates a purchase into today's spend record.
func (s *ColonyState) recordSpend(amount int) {
	for i := range s.CoinsSpentByDay {
		if s.CoinsSpentByDay[i].Day == s.Day {
			s.CoinsSpentByDay[i].Amount += amount
			return
		}
	}
	s.CoinsSpentByDay = append(s.CoinsSpentByDay, SpendRecord{Day: s.Day, Amount: amount})
}
