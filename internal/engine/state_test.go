package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
)

func TestNewGame(t *testing.T) {
	s := NewGame(config.Default())

	require.Len(t, s.Population, 1)
	assert.Equal(t, catalog.BreedCommon, s.Population[0].Breed)
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 50, s.Coins)
	assert.Equal(t, 10, s.Food)
	assert.Equal(t, 10, s.Water)
	assert.Equal(t, 1, s.Houses)
	assert.Equal(t, catalog.FoodCarrots, s.FoodTier)
	assert.Equal(t, catalog.WaterNormal, s.WaterTier)
	assert.InDelta(t, 1.0, s.CoinMultiplier, 1e-9)
	assert.False(t, s.GameOver())
}

func TestCloneIsolation(t *testing.T) {
	s := NewGame(config.Default())
	s.OwnedUpgrades = []string{"training-grounds"}
	s.AchievementUnlockDay["first-rabbit"] = 1

	c := s.Clone()
	c.Population[0].Breed = catalog.BreedLegendary
	c.OwnedUpgrades[0] = "changed"
	c.AchievementUnlockDay["first-rabbit"] = 99
	c.Population = append(c.Population, Individual{ID: "x"})

	assert.Equal(t, catalog.BreedCommon, s.Population[0].Breed)
	assert.Equal(t, "training-grounds", s.OwnedUpgrades[0])
	assert.Equal(t, 1, s.AchievementUnlockDay["first-rabbit"])
	assert.Len(t, s.Population, 1)
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewGame(config.Default())
	s.OwnedUpgrades = []string{"training-grounds"}
	s.EpidemicActive = true
	s.InfectedIDs = []string{s.Population[0].ID}
	s.EpidemicDaysLeft = 12
	ev, _ := catalog.EventByID("generous-visitor")
	s.PendingEvent = &ev

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	got := BlankState()
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, s.Day, got.Day)
	assert.Equal(t, s.Population, got.Population)
	assert.Equal(t, s.OwnedUpgrades, got.OwnedUpgrades)
	assert.Equal(t, s.InfectedIDs, got.InfectedIDs)
	assert.Equal(t, s.EpidemicDaysLeft, got.EpidemicDaysLeft)
	require.NotNil(t, got.PendingEvent)
	assert.Equal(t, "generous-visitor", got.PendingEvent.ID)
}

func TestBlankStateDefaultsSurviveMigration(t *testing.T) {
	// A save predating the multiplier fields keeps neutral values.
	got := BlankState()
	require.NoError(t, json.Unmarshal([]byte(`{"day":5,"coins":77}`), &got))

	assert.Equal(t, 5, got.Day)
	assert.Equal(t, 77, got.Coins)
	assert.InDelta(t, 1.0, got.CoinMultiplier, 1e-9)
	assert.InDelta(t, 1.0, got.BreedingBonusMultiplier, 1e-9)
	assert.InDelta(t, 1.0, got.FoodConsumptionMultiplier, 1e-9)
	assert.NotNil(t, got.AchievementUnlockDay)
	assert.Equal(t, catalog.FoodCarrots, got.FoodTier)
	assert.Equal(t, catalog.WaterNormal, got.WaterTier)
}

func TestBreedCounts(t *testing.T) {
	s := NewGame(config.Default())
	addRabbits(&s, 2, catalog.BreedRare)
	addRabbits(&s, 1, catalog.BreedLegendary)

	counts := s.BreedCounts()
	assert.Equal(t, 1, counts[catalog.BreedCommon])
	assert.Equal(t, 2, counts[catalog.BreedRare])
	assert.Equal(t, 1, counts[catalog.BreedLegendary])
}

func TestFinishRun(t *testing.T) {
	s := NewGame(config.Default())
	s.Day = 120
	s.TotalCoinsEarned = 4000
	s.Houses = 3
	s.UnlockedAchievements = []string{"first-rabbit", "day-100"}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r := s.FinishRun(now)
	assert.Equal(t, 120, r.Day)
	assert.Equal(t, 4000, r.TotalCoinsEarned)
	assert.Equal(t, 1, r.Rabbits)
	assert.Equal(t, 3, r.Houses)
	assert.Equal(t, now, r.EndedAt)
	assert.Equal(t, []string{"first-rabbit", "day-100"}, r.Achievements)
}
