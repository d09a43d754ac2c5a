package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
)

func TestPurchaseFood(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())

	out, err := eng.Purchase(s, mustItem(t, "food-bundle"), 1)
	require.NoError(t, err)

	assert.Equal(t, 40, out.Coins)
	assert.Equal(t, 20, out.Food)
	require.Len(t, out.CoinsSpentByDay, 1)
	assert.Equal(t, SpendRecord{Day: 1, Amount: 10}, out.CoinsSpentByDay[0])

	// Same-day purchases accumulate into one record.
	out, err = eng.Purchase(out, mustItem(t, "water-can"), 1)
	require.NoError(t, err)
	require.Len(t, out.CoinsSpentByDay, 1)
	assert.Equal(t, 18, out.CoinsSpentByDay[0].Amount)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())

	out, err := eng.Purchase(s, mustItem(t, "rabbit-house"), 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, s.Coins, out.Coins, "rejected purchases change nothing")
}

func TestPurchaseRabbitCapacity(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 1000

	_, err := eng.Purchase(s, mustItem(t, "rabbit-common"), 4)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	out, err := eng.Purchase(s, mustItem(t, "rabbit-rare"), 1)
	require.NoError(t, err)
	assert.Len(t, out.Population, 2)
	assert.Equal(t, catalog.BreedRare, out.Population[1].Breed)
}

func TestPurchaseFoodTierOrder(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 1000

	// Pellets cannot be bought straight from carrots.
	_, err := eng.Purchase(s, mustItem(t, "pellets-upgrade"), 1)
	assert.ErrorIs(t, err, ErrPrerequisiteUnmet)

	out, err := eng.Purchase(s, mustItem(t, "lettuce-upgrade"), 1)
	require.NoError(t, err)
	assert.Equal(t, catalog.FoodLettuce, out.FoodTier)

	// Re-buying the reached tier is rejected as owned.
	_, err = eng.Purchase(out, mustItem(t, "lettuce-upgrade"), 1)
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	out, err = eng.Purchase(out, mustItem(t, "pellets-upgrade"), 1)
	require.NoError(t, err)
	assert.Equal(t, catalog.FoodPellets, out.FoodTier)
}

func TestPurchaseWaterTierOnce(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 1000

	out, err := eng.Purchase(s, mustItem(t, "purified-water"), 1)
	require.NoError(t, err)
	assert.Equal(t, catalog.WaterPurified, out.WaterTier)

	_, err = eng.Purchase(out, mustItem(t, "purified-water"), 1)
	assert.ErrorIs(t, err, ErrAlreadyOwned)
}

func TestPurchaseUpgradeGates(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 10000

	// training-grounds needs lettuce or better.
	_, err := eng.Purchase(s, mustItem(t, "training-grounds"), 1)
	assert.ErrorIs(t, err, ErrPrerequisiteUnmet)

	// mega-hutch needs two houses.
	_, err = eng.Purchase(s, mustItem(t, "mega-hutch"), 1)
	assert.ErrorIs(t, err, ErrPrerequisiteUnmet)

	// carrot-farm needs day 10.
	_, err = eng.Purchase(s, mustItem(t, "carrot-farm"), 1)
	assert.ErrorIs(t, err, ErrPrerequisiteUnmet)

	// market-stall needs training-grounds built first.
	_, err = eng.Purchase(s, mustItem(t, "market-stall"), 1)
	assert.ErrorIs(t, err, ErrPrerequisiteUnmet)

	s.FoodTier = catalog.FoodLettuce
	out, err := eng.Purchase(s, mustItem(t, "training-grounds"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, out.CoinMultiplier, 1e-9)
	assert.Contains(t, out.OwnedUpgrades, "training-grounds")

	// Owned gate satisfied now.
	out, err = eng.Purchase(out, mustItem(t, "market-stall"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.25*1.15, out.CoinMultiplier, 1e-9)

	_, err = eng.Purchase(out, mustItem(t, "training-grounds"), 1)
	assert.ErrorIs(t, err, ErrAlreadyOwned)
}

func TestPurchaseUpgradeQtyForcedToOne(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 10000
	s.Day = 10

	out, err := eng.Purchase(s, mustItem(t, "carrot-farm"), 5)
	require.NoError(t, err)
	assert.Equal(t, 10, out.PassiveFoodPerDay)
	assert.Equal(t, 10000-220, out.Coins)
}

func TestPurchaseMegaHutch(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 10000
	s.Houses = 2

	out, err := eng.Purchase(s, mustItem(t, "mega-hutch"), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, out.CapacityBonusPerHouse)
	assert.Equal(t, 12, eng.Capacity(out))
}

func TestPurchaseRepairsBrokenUpgrade(t *testing.T) {
	// Broken repurchase rolls the 2-10x price multiplier: draw 0 gives 2x.
	eng := testEngine(&script{ints: []int{0}})
	s := NewGame(config.Default())
	s.Coins = 10000
	s.FoodTier = catalog.FoodLettuce
	s.BrokenUpgrades = []string{"training-grounds"}

	out, err := eng.Purchase(s, mustItem(t, "training-grounds"), 1)
	require.NoError(t, err)

	assert.Equal(t, 10000-400, out.Coins)
	assert.NotContains(t, out.BrokenUpgrades, "training-grounds")
	assert.Contains(t, out.OwnedUpgrades, "training-grounds")
	assert.Equal(t, 1, out.RepairCount)
	assert.InDelta(t, 1.25, out.CoinMultiplier, 1e-9)
}

func TestPurchaseShopDiscountCapped(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 10000
	s.Day = 15
	s.Houses = 3
	s.ShopDiscountBonus = 0.25

	out, err := eng.Purchase(s, mustItem(t, "logistics-network"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, out.ShopDiscountBonus, 1e-9, "bonus saturates at the cap")
}

func TestPurchaseUnlocksAchievements(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Coins = 1000

	out, err := eng.Purchase(s, mustItem(t, "purified-water"), 1)
	require.NoError(t, err)
	assert.Contains(t, out.UnlockedAchievements, "purified-water")
}
