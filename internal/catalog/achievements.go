package catalog

import "slices"

// Stats is the read-only snapshot achievements are evaluated against.
type Stats struct {
	Rabbits          int
	Coins            int
	Day              int
	TotalBorn        int
	TotalCoinsEarned int
	Houses           int
	FoodTier         FoodTier
	WaterTier        WaterTier
	OwnedUpgrades    []string
	Breaks           int
	Repairs          int
	Survivals        int
}

func (s Stats) owns(id string) bool { return slices.Contains(s.OwnedUpgrades, id) }

// Achievement is one declarative predicate over a stats snapshot.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Category    string
	Requirement func(Stats) bool
}

// Achievements is the fixed ordered achievement catalog.
var Achievements = []Achievement{
	// Rabbits
	{ID: "first-rabbit", Name: "First Steps", Description: "Welcome your first rabbit", Category: "rabbits",
		Requirement: func(s Stats) bool { return s.Rabbits >= 1 }},
	{ID: "colony-5", Name: "Small Colony", Description: "Grow your colony to 5 rabbits", Category: "rabbits",
		Requirement: func(s Stats) bool { return s.Rabbits >= 5 }},
	{ID: "colony-10", Name: "Growing Family", Description: "Reach 10 rabbits", Category: "rabbits",
		Requirement: func(s Stats) bool { return s.Rabbits >= 10 }},
	{ID: "colony-25", Name: "Rabbit Empire", Description: "Build an empire of 25 rabbits", Category: "rabbits",
		Requirement: func(s Stats) bool { return s.Rabbits >= 25 }},
	{ID: "breeder-100", Name: "Master Breeder", Description: "Birth 100 rabbits total", Category: "rabbits",
		Requirement: func(s Stats) bool { return s.TotalBorn >= 100 }},

	// Coins
	{ID: "coins-100", Name: "Penny Pincher", Description: "Accumulate 100 coins", Category: "coins",
		Requirement: func(s Stats) bool { return s.Coins >= 100 }},
	{ID: "coins-500", Name: "Small Fortune", Description: "Accumulate 500 coins", Category: "coins",
		Requirement: func(s Stats) bool { return s.Coins >= 500 }},
	{ID: "coins-1000", Name: "Coin Collector", Description: "Accumulate 1,000 coins", Category: "coins",
		Requirement: func(s Stats) bool { return s.Coins >= 1000 }},
	{ID: "earnings-5000", Name: "Tycoon", Description: "Earn 5,000 coins total", Category: "coins",
		Requirement: func(s Stats) bool { return s.TotalCoinsEarned >= 5000 }},

	// Days
	{ID: "day-7", Name: "First Week", Description: "Survive for 7 days", Category: "days",
		Requirement: func(s Stats) bool { return s.Day >= 7 }},
	{ID: "day-30", Name: "One Month Strong", Description: "Survive for 30 days", Category: "days",
		Requirement: func(s Stats) bool { return s.Day >= 30 }},
	{ID: "day-50", Name: "Dedicated Farmer", Description: "Survive for 50 days", Category: "days",
		Requirement: func(s Stats) bool { return s.Day >= 50 }},
	{ID: "day-100", Name: "Century Club", Description: "Reach day 100", Category: "days",
		Requirement: func(s Stats) bool { return s.Day >= 100 }},
	{ID: "day-1000", Name: "Ranch Owner", Description: "Reach day 1000", Category: "days",
		Requirement: func(s Stats) bool { return s.Day >= 1000 }},

	// Resources and tiers
	{ID: "house-5", Name: "Real Estate Mogul", Description: "Own 5 rabbit houses", Category: "resources",
		Requirement: func(s Stats) bool { return s.Houses >= 5 }},
	{ID: "lettuce-garden", Name: "Lettuce Garden", Description: "Upgrade to lettuce", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.FoodTier == FoodLettuce }},
	{ID: "premium-food", Name: "Gourmet Chef", Description: "Upgrade to premium pellets", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.FoodTier == FoodPellets }},
	{ID: "purified-water", Name: "Water Connoisseur", Description: "Upgrade to purified water", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.WaterTier == WaterPurified }},

	// Generic upgrades
	{ID: "upg-training-grounds", Name: "Training Grounds", Description: "Build training grounds", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("training-grounds") }},
	{ID: "upg-bunny-nursery", Name: "Bunny Nursery", Description: "Open a bunny nursery", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("bunny-nursery") }},
	{ID: "upg-fertilizer-system", Name: "Fertilizer System", Description: "Install a fertilizer system", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("fertilizer-system") }},
	{ID: "upg-hydration-station", Name: "Hydration Station", Description: "Install a hydration station", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("hydration-station") }},
	{ID: "upg-carrot-farm", Name: "Carrot Farm", Description: "Start a carrot farm", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("carrot-farm") }},
	{ID: "upg-deep-well", Name: "Deep Well", Description: "Dig a deep well", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("deep-well") }},
	{ID: "upg-solar-panels", Name: "Solar Panels", Description: "Install solar panels", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("solar-panels") }},
	{ID: "upg-market-stall", Name: "Market Stall", Description: "Open a market stall", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("market-stall") }},
	{ID: "upg-logistics-network", Name: "Logistics Network", Description: "Build a logistics network", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("logistics-network") }},
	{ID: "upg-purifier-plus", Name: "Purifier Plus", Description: "Enhance your purifier", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.owns("purifier-plus") }},

	// Breakage, repair and events
	{ID: "first-break", Name: "Uh Oh!", Description: "Experience your first upgrade break", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.Breaks >= 1 }},
	{ID: "first-repair", Name: "Fix-It Bun", Description: "Repair your first broken upgrade", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.Repairs >= 1 }},
	{ID: "full-upgrade", Name: "Perfectionist", Description: "Reach top food and water tiers", Category: "upgrades",
		Requirement: func(s Stats) bool { return s.FoodTier == FoodPellets && s.WaterTier == WaterPurified }},
	{ID: "survive-fever", Name: "Plague Survivor", Description: "Survive a Rabbit Fever outbreak", Category: "days",
		Requirement: func(s Stats) bool { return s.Survivals >= 1 }},
}

// AchievementByID looks up an achievement; ok is false for unknown ids.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
