// Package engine implements the day-advancement simulation core: resource
// consumption, earnings, breeding, random events, the epidemic state
// machine, upgrade breakage, purchases and sales. Operations take a
// ColonyState by value and return the next state; the engine performs no
// I/O and keeps no references across calls.
package engine

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/hollowfield/warrensim/internal/catalog"
	"github.com/hollowfield/warrensim/internal/config"
)

// Rejection values for purchase and sale operations. All are recoverable;
// the engine never aborts a turn over them.
var (
	ErrInsufficientFunds  = errors.New("insufficient coins")
	ErrCapacityExceeded   = errors.New("not enough housing capacity")
	ErrAlreadyOwned       = errors.New("upgrade already acquired")
	ErrPrerequisiteUnmet  = errors.New("prerequisite not met")
	ErrNotSaleWindow      = errors.New("not a sale day")
	ErrAlreadySoldToday   = errors.New("already sold today")
	ErrEmptyPopulation    = errors.New("no rabbits to sell")
)

// Individual is one rabbit in the colony.
type Individual struct {
	ID    string           `json:"id"`
	Breed catalog.BreedTag `json:"breed"`
}

// SpendRecord accumulates coins spent on one day.
type SpendRecord struct {
	Day    int `json:"day"`
	Amount int `json:"amount"`
}

// ColonyState is the sole aggregate of the simulation. Callers own it; the
// engine clones it on entry to every operation so returned states share no
// mutable backing storage with their inputs.
type ColonyState struct {
	Day        int          `json:"day"`
	Population []Individual `json:"population"`
	Coins      int          `json:"coins"`
	Food       int          `json:"food"`
	Water      int          `json:"water"`
	Houses     int          `json:"houses"`

	FoodTier  catalog.FoodTier  `json:"food_tier"`
	WaterTier catalog.WaterTier `json:"water_tier"`

	UnlockedAchievements []string       `json:"unlocked_achievements"`
	AchievementUnlockDay map[string]int `json:"achievement_unlock_day"`

	OwnedUpgrades  []string `json:"owned_upgrades"`
	BrokenUpgrades []string `json:"broken_upgrades"`

	// Upgrade effect accumulators. Multipliers start at 1, bonuses at 0.
	CoinMultiplier             float64 `json:"coin_multiplier"`
	BreedingBonusMultiplier    float64 `json:"breeding_bonus_multiplier"`
	FoodConsumptionMultiplier  float64 `json:"food_consumption_multiplier"`
	WaterConsumptionMultiplier float64 `json:"water_consumption_multiplier"`
	CapacityBonusPerHouse      int     `json:"capacity_bonus_per_house"`
	PassiveCoinsPerDay         int     `json:"passive_coins_per_day"`
	PassiveFoodPerDay          int     `json:"passive_food_per_day"`
	PassiveWaterPerDay         int     `json:"passive_water_per_day"`
	ShopDiscountBonus          float64 `json:"shop_discount_bonus"`

	// Epidemic sub-state.
	EpidemicActive   bool     `json:"epidemic_active"`
	InfectedIDs      []string `json:"infected_ids"`
	IsolatedIDs      []string `json:"isolated_ids"`
	EpidemicDaysLeft int      `json:"epidemic_days_left"`
	IsolationChosen  bool     `json:"isolation_chosen"`
	SurvivalCount    int      `json:"survival_count"`

	// Lifetime counters.
	TotalBorn        int           `json:"total_born"`
	TotalCoinsEarned int           `json:"total_coins_earned"`
	BreakCount       int           `json:"break_count"`
	RepairCount      int           `json:"repair_count"`
	CoinsSpentByDay  []SpendRecord `json:"coins_spent_by_day"`
	LastSaleDay      int           `json:"last_sale_day"`

	// Most recently drawn event, cleared by DismissEvent.
	PendingEvent *catalog.Event `json:"pending_event,omitempty"`
}

// NewGame returns the fixed starting state: one common rabbit, starter
// resources, day 1.
func NewGame(bal config.Balance) ColonyState {
	s := BlankState()
	s.Population = []Individual{{ID: uuid.NewString(), Breed: catalog.BreedCommon}}
	s.Coins = bal.StartCoins
	s.Food = bal.StartFood
	s.Water = bal.StartWater
	s.Houses = bal.StartHouses
	return s
}

// BlankState returns a state with every field at its schema default:
// multipliers at 1, bonuses at 0, empty collections, day 1. Persistence
// unmarshals saves over a blank state so missing fields keep defaults.
func BlankState() ColonyState {
	return ColonyState{
		Day:                        1,
		Population:                 []Individual{},
		FoodTier:                   catalog.FoodCarrots,
		WaterTier:                  catalog.WaterNormal,
		UnlockedAchievements:       []string{},
		AchievementUnlockDay:       map[string]int{},
		OwnedUpgrades:              []string{},
		BrokenUpgrades:             []string{},
		CoinMultiplier:             1,
		BreedingBonusMultiplier:    1,
		FoodConsumptionMultiplier:  1,
		WaterConsumptionMultiplier: 1,
		InfectedIDs:                []string{},
		IsolatedIDs:                []string{},
		CoinsSpentByDay:            []SpendRecord{},
	}
}

// Clone returns a deep copy sharing no slices or maps with s.
func (s ColonyState) Clone() ColonyState {
	out := s
	out.Population = slices.Clone(s.Population)
	out.UnlockedAchievements = slices.Clone(s.UnlockedAchievements)
	out.AchievementUnlockDay = maps.Clone(s.AchievementUnlockDay)
	out.OwnedUpgrades = slices.Clone(s.OwnedUpgrades)
	out.BrokenUpgrades = slices.Clone(s.BrokenUpgrades)
	out.InfectedIDs = slices.Clone(s.InfectedIDs)
	out.IsolatedIDs = slices.Clone(s.IsolatedIDs)
	out.CoinsSpentByDay = slices.Clone(s.CoinsSpentByDay)
	if s.PendingEvent != nil {
		ev := *s.PendingEvent
		out.PendingEvent = &ev
	}
	return out
}

// Snapshot converts the state into the read-only view achievements and
// leaderboard sync consume.
func (s ColonyState) Snapshot() catalog.Stats {
	return catalog.Stats{
		Rabbits:          len(s.Population),
		Coins:            s.Coins,
		Day:              s.Day,
		TotalBorn:        s.TotalBorn,
		TotalCoinsEarned: s.TotalCoinsEarned,
		Houses:           s.Houses,
		FoodTier:         s.FoodTier,
		WaterTier:        s.WaterTier,
		OwnedUpgrades:    slices.Clone(s.OwnedUpgrades),
		Breaks:           s.BreakCount,
		Repairs:          s.RepairCount,
		Survivals:        s.SurvivalCount,
	}
}

// BreedCounts returns the population split by breed tag.
func (s ColonyState) BreedCounts() map[catalog.BreedTag]int {
	out := make(map[catalog.BreedTag]int, 3)
	for _, ind := range s.Population {
		out[ind.Breed]++
	}
	return out
}

// GameOver reports whether the run has logically ended.
func (s ColonyState) GameOver() bool { return len(s.Population) == 0 }

// RunRecord archives one finished run for history and the leaderboard.
type RunRecord struct {
	Day              int       `json:"day"`
	TotalCoinsEarned int       `json:"total_coins_earned"`
	EndedAt          time.Time `json:"ended_at"`
	Rabbits          int       `json:"rabbits"`
	Houses           int       `json:"houses"`
	Achievements     []string  `json:"achievements"`
}

// FinishRun snapshots the state into a RunRecord at game-over time.
func (s ColonyState) FinishRun(now time.Time) RunRecord {
	return RunRecord{
		Day:              s.Day,
		TotalCoinsEarned: s.TotalCoinsEarned,
		EndedAt:          now,
		Rabbits:          len(s.Population),
		Houses:           s.Houses,
		Achievements:     slices.Clone(s.UnlockedAchievements),
	}
}
