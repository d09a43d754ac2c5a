package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
)

func mustItem(t *testing.T, id string) catalog.Item {
	t.Helper()
	item, ok := catalog.ItemByID(id)
	require.True(t, ok, "item %s", id)
	return item
}

func TestPriceBase(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())

	assert.Equal(t, 10, eng.Price(s, mustItem(t, "food-bundle"), 1))
	assert.Equal(t, 100, eng.Price(s, mustItem(t, "rabbit-house"), 1))
	assert.Equal(t, 10, eng.Price(s, mustItem(t, "food-bundle"), 0), "qty is floored at 1")
}

func TestPriceBulkDiscount(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	bundle := mustItem(t, "food-bundle")

	// 5x: 50 coins less 5%. 10x: 100 coins less 10%.
	assert.Equal(t, 48, eng.Price(s, bundle, 5))
	assert.Equal(t, 90, eng.Price(s, bundle, 10))
	assert.LessOrEqual(t, eng.Price(s, bundle, 10), 10*eng.Price(s, bundle, 1))
}

func TestPriceDayInflationAndSurcharge(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Day = 30

	// Day multiplier 1.03, surcharge 0.05 pushing the discount negative:
	// 10 * 1.05 * 1.03 = 10.815, rounded up.
	assert.Equal(t, 11, eng.Price(s, mustItem(t, "food-bundle"), 1))
}

func TestPriceUpgradesNotDiscountable(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Day = 30
	s.Houses = 25
	s.ShopDiscountBonus = 0.3

	// Only the day multiplier applies: 200 * 1.03.
	assert.Equal(t, 206, eng.Price(s, mustItem(t, "training-grounds"), 1))
}

func TestPriceHouseAndShopDiscounts(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Houses = 25 // house discount capped at 0.20
	s.ShopDiscountBonus = 0.3

	// Bulk 0.10 + house 0.20 + bonus 0.30 = 0.60 off: 80 * 0.4 = 32.
	assert.Equal(t, 32, eng.Price(s, mustItem(t, "water-can"), 10))
}

func TestPriceBrokenUpgradeMultiplier(t *testing.T) {
	item := mustItem(t, "training-grounds")

	// IntBetween(2, 10) with a scripted draw of 3 yields multiplier 5.
	eng := testEngine(&script{ints: []int{3}})
	s := NewGame(config.Default())
	s.BrokenUpgrades = []string{item.ID}

	assert.Equal(t, 1000, eng.Price(s, item, 1))

	// The multiplier range is honored across arbitrary draws.
	eng = testEngine(&script{ints: []int{0}})
	assert.Equal(t, 400, eng.Price(s, item, 1))
	eng = testEngine(&script{ints: []int{8}})
	assert.Equal(t, 2000, eng.Price(s, item, 1))
}

func TestPriceBrokenMultiplierOnlyForThatUpgrade(t *testing.T) {
	eng := testEngine(&script{ints: []int{8}})
	s := NewGame(config.Default())
	s.BrokenUpgrades = []string{"training-grounds"}

	assert.Equal(t, 150, eng.Price(s, mustItem(t, "market-stall"), 1))
}
