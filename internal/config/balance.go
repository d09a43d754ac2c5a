// Package config holds gameplay balance configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds every tuning knob of the colony simulation. Values are
// plain data; the engine never reaches for package-level constants.
type Balance struct {
	// Starting state
	StartCoins  int `yaml:"start_coins"`
	StartFood   int `yaml:"start_food"`
	StartWater  int `yaml:"start_water"`
	StartHouses int `yaml:"start_houses"`

	// Housing
	BaseCapacityPerHouse int `yaml:"base_capacity_per_house"`

	// Daily consumption and earnings
	FoodPerHead  int `yaml:"food_per_head"`
	WaterPerHead int `yaml:"water_per_head"`
	CoinsPerHead int `yaml:"coins_per_head"`

	// Time bonus on earnings: +TimeBonusStep per TimeBonusStepDays, capped.
	TimeBonusStepDays int     `yaml:"time_bonus_step_days"`
	TimeBonusStep     float64 `yaml:"time_bonus_step"`
	TimeBonusCap      float64 `yaml:"time_bonus_cap"`

	// Breeding
	BreedingChance         float64 `yaml:"breeding_chance"`
	PurifiedBreedingFactor float64 `yaml:"purified_breeding_factor"`

	// Random events
	EventChance       float64 `yaml:"event_chance"`
	FragileColonySize int     `yaml:"fragile_colony_size"`

	// Epidemic
	EpidemicDurationDays   int     `yaml:"epidemic_duration_days"`
	EpidemicBreedingFactor float64 `yaml:"epidemic_breeding_factor"`
	EpidemicWaterFactor    float64 `yaml:"epidemic_water_factor"`
	InfectMinFraction      float64 `yaml:"infect_min_fraction"`
	InfectMaxFraction      float64 `yaml:"infect_max_fraction"`
	CureCostFraction       float64 `yaml:"cure_cost_fraction"`

	// Upgrade breakage
	BreakChance        float64 `yaml:"break_chance"`
	MinBreakCandidates int     `yaml:"min_break_candidates"`

	// Population sale
	SaleWindowDays  int     `yaml:"sale_window_days"`
	SalePricePerHead int    `yaml:"sale_price_per_head"`
	SaleMinFraction float64 `yaml:"sale_min_fraction"`
	SaleMaxFraction float64 `yaml:"sale_max_fraction"`

	// Pricing
	PriceDayStepDays      int     `yaml:"price_day_step_days"`
	PriceDayStepRate      float64 `yaml:"price_day_step_rate"`
	BulkFiveDiscount      float64 `yaml:"bulk_five_discount"`
	BulkTenDiscount       float64 `yaml:"bulk_ten_discount"`
	SurchargeStepDays     int     `yaml:"surcharge_step_days"`
	SurchargeStep         float64 `yaml:"surcharge_step"`
	SurchargeCap          float64 `yaml:"surcharge_cap"`
	HouseDiscountStep     float64 `yaml:"house_discount_step"`
	HouseDiscountStepSize int     `yaml:"house_discount_step_size"`
	HouseDiscountCap      float64 `yaml:"house_discount_cap"`
	DiscountCap           float64 `yaml:"discount_cap"`
	ShopDiscountCap       float64 `yaml:"shop_discount_cap"`
	BrokenPriceMin        int     `yaml:"broken_price_min"`
	BrokenPriceMax        int     `yaml:"broken_price_max"`
}

// Default returns the standard balance configuration.
func Default() Balance {
	return Balance{
		StartCoins:  50,
		StartFood:   10,
		StartWater:  10,
		StartHouses: 1,

		BaseCapacityPerHouse: 4,

		FoodPerHead:  1,
		WaterPerHead: 1,
		CoinsPerHead: 2,

		TimeBonusStepDays: 80,
		TimeBonusStep:     0.05,
		TimeBonusCap:      0.95,

		BreedingChance:         0.3,
		PurifiedBreedingFactor: 2.0,

		EventChance:       0.3,
		FragileColonySize: 4,

		EpidemicDurationDays:   30,
		EpidemicBreedingFactor: 0.25,
		EpidemicWaterFactor:    2.0,
		InfectMinFraction:      0.10,
		InfectMaxFraction:      0.50,
		CureCostFraction:       0.7,

		BreakChance:        0.01,
		MinBreakCandidates: 2,

		SaleWindowDays:   40,
		SalePricePerHead: 25,
		SaleMinFraction:  0.10,
		SaleMaxFraction:  0.50,

		PriceDayStepDays:      10,
		PriceDayStepRate:      0.01,
		BulkFiveDiscount:      0.05,
		BulkTenDiscount:       0.10,
		SurchargeStepDays:     20,
		SurchargeStep:         0.05,
		SurchargeCap:          2.00,
		HouseDiscountStep:     0.02,
		HouseDiscountStepSize: 5,
		HouseDiscountCap:      0.20,
		DiscountCap:           0.8,
		ShopDiscountCap:       0.3,
		BrokenPriceMin:        2,
		BrokenPriceMax:        10,
	}
}

// Casual returns an easier balance for casual play.
func Casual() Balance {
	cfg := Default()
	cfg.BreedingChance = 0.4
	cfg.EventChance = 0.25
	cfg.BreakChance = 0.005
	cfg.EpidemicDurationDays = 20
	return cfg
}

// Hard returns a harder balance for experienced players.
func Hard() Balance {
	cfg := Default()
	cfg.StartCoins = 30
	cfg.BreedingChance = 0.25
	cfg.EventChance = 0.35
	cfg.BreakChance = 0.02
	cfg.CureCostFraction = 0.85
	return cfg
}

// Load reads a YAML balance file, applying it on top of the defaults so a
// partial file only overrides the keys it names.
func Load(path string) (Balance, error) {
	b := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("balance.yaml: %w", err)
	}
	return b, nil
}
