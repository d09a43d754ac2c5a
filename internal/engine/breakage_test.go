package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
)

func TestBreakCandidatesIncludeTiers(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.OwnedUpgrades = []string{"training-grounds", "market-stall"}
	s.BrokenUpgrades = []string{"market-stall"}
	s.FoodTier = catalog.FoodPellets
	s.WaterTier = catalog.WaterPurified

	got := eng.breakCandidates(s)
	assert.ElementsMatch(t, []string{"training-grounds", "pellets-upgrade", "purified-water"}, got)
}

func TestRunBreakageNeedsEnoughCandidates(t *testing.T) {
	src := &script{floats: []float64{0.0}}
	eng := testEngine(src)
	s := NewGame(config.Default())
	s.OwnedUpgrades = []string{"training-grounds", "market-stall"}

	id := eng.runBreakage(&s)
	assert.Empty(t, id)
	assert.Equal(t, 0, s.BreakCount)
	assert.Len(t, src.floats, 1, "no roll spent below the candidate floor")
}

func TestRunBreakageReversesGenericUpgrade(t *testing.T) {
	src := &script{floats: []float64{0.005}, ints: []int{0}}
	eng := testEngine(src)
	s := NewGame(config.Default())
	s.OwnedUpgrades = []string{"training-grounds", "market-stall"}
	s.FoodTier = catalog.FoodLettuce
	s.CoinMultiplier = 1.25 * 1.15

	id := eng.runBreakage(&s)
	require.Equal(t, "training-grounds", id)

	assert.InDelta(t, 1.15, s.CoinMultiplier, 1e-9)
	assert.NotContains(t, s.OwnedUpgrades, "training-grounds")
	assert.Contains(t, s.BrokenUpgrades, "training-grounds")
	assert.Equal(t, 1, s.BreakCount)
}

func TestRunBreakageMissesOnHighRoll(t *testing.T) {
	src := &script{floats: []float64{0.5}}
	eng := testEngine(src)
	s := NewGame(config.Default())
	s.OwnedUpgrades = []string{"training-grounds", "market-stall", "solar-panels"}

	assert.Empty(t, eng.runBreakage(&s))
	assert.Equal(t, 0, s.BreakCount)
}

func TestReverseUpgradeTierStepDown(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.FoodTier = catalog.FoodPellets
	s.WaterTier = catalog.WaterPurified

	eng.reverseUpgrade(&s, "pellets-upgrade")
	assert.Equal(t, catalog.FoodLettuce, s.FoodTier)

	eng.reverseUpgrade(&s, "lettuce-upgrade")
	assert.Equal(t, catalog.FoodCarrots, s.FoodTier)

	eng.reverseUpgrade(&s, "purified-water")
	assert.Equal(t, catalog.WaterNormal, s.WaterTier)
}

func TestReverseUpgradeFloorsAtNeutral(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())

	// Reversal of an effect the state never gained cannot undershoot 1.
	s.CoinMultiplier = 1.1
	eng.reverseUpgrade(&s, "training-grounds")
	assert.InDelta(t, 1.0, s.CoinMultiplier, 1e-9)

	s.FoodConsumptionMultiplier = 0.8
	eng.reverseUpgrade(&s, "fertilizer-system")
	assert.InDelta(t, 1.0, s.FoodConsumptionMultiplier, 1e-9)
}

func TestReverseUpgradeMegaHutch(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.Houses = 2
	s.CapacityBonusPerHouse = 2
	s.OwnedUpgrades = []string{"mega-hutch"}

	eng.reverseUpgrade(&s, "mega-hutch")

	assert.Equal(t, 0, s.CapacityBonusPerHouse)
	assert.NotContains(t, s.OwnedUpgrades, "mega-hutch")
	assert.Equal(t, 8, eng.Capacity(s))
}

func TestReverseUpgradePassivesAndDiscount(t *testing.T) {
	eng := testEngine(&script{})
	s := NewGame(config.Default())
	s.PassiveFoodPerDay = 10
	s.ShopDiscountBonus = 0.10

	eng.reverseUpgrade(&s, "carrot-farm")
	assert.Equal(t, 0, s.PassiveFoodPerDay)

	eng.reverseUpgrade(&s, "logistics-network")
	assert.InDelta(t, 0.0, s.ShopDiscountBonus, 1e-9)
}
