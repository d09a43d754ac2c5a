package engine

import (
	"math"
	"slices"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/entropy"
)

// Price computes the coin cost of buying qty of an item in the given
// state. Consumables and housing get bulk and house-count discounts minus
// a progression surcharge; repurchasing a broken upgrade costs a freshly
// rolled 2-10x penalty (the roll is not stable across calls).
func (e *Engine) Price(s ColonyState, item catalog.Item, qty int) int {
	if qty < 1 {
		qty = 1
	}

	dayMultiplier := 1 + math.Floor(float64(s.Day)/float64(e.bal.PriceDayStepDays))*e.bal.PriceDayStepRate

	bulkDiscount := 0.0
	switch {
	case qty >= 10:
		bulkDiscount = e.bal.BulkTenDiscount
	case qty >= 5:
		bulkDiscount = e.bal.BulkFiveDiscount
	}

	surcharge := math.Min(e.bal.SurchargeCap,
		math.Floor(float64(s.Day)/float64(e.bal.SurchargeStepDays))*e.bal.SurchargeStep)

	houseDiscount := math.Min(e.bal.HouseDiscountCap,
		math.Floor(float64(s.Houses)/float64(e.bal.HouseDiscountStepSize))*e.bal.HouseDiscountStep)

	discountFactor := 1.0
	if item.Type == catalog.ItemFood || item.Type == catalog.ItemWater || item.Type == catalog.ItemHouse {
		discountFactor = 1 - math.Min(e.bal.DiscountCap, bulkDiscount-surcharge+houseDiscount+s.ShopDiscountBonus)
	}

	brokenMultiplier := 1
	if item.Type == catalog.ItemUpgrade && slices.Contains(s.BrokenUpgrades, item.ID) {
		brokenMultiplier = entropy.IntBetween(e.rng, e.bal.BrokenPriceMin, e.bal.BrokenPriceMax)
	}

	total := float64(item.Cost) * float64(qty) * discountFactor * float64(brokenMultiplier) * dayMultiplier
	return int(math.Ceil(total))
}
