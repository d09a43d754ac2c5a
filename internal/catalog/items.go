package catalog

// ItemType groups shop items for pricing and validation.
type ItemType string

const (
	ItemRabbit  ItemType = "rabbit"
	ItemFood    ItemType = "food"
	ItemWater   ItemType = "water"
	ItemHouse   ItemType = "house"
	ItemUpgrade ItemType = "upgrade"
)

// ItemEffect is what a purchase applies to the state. Multipliers combine
// multiplicatively into the state accumulators, bonuses add.
type ItemEffect struct {
	Rabbits int
	Food    int
	Water   int
	Houses  int

	FoodTier  FoodTier
	WaterTier WaterTier

	CoinMultiplier             float64
	BreedingBonusMultiplier    float64
	FoodConsumptionMultiplier  float64
	WaterConsumptionMultiplier float64
	CapacityBonusPerHouse      int
	PassiveCoinsPerDay         int
	PassiveFoodPerDay          int
	PassiveWaterPerDay         int
	ShopDiscountBonus          float64
}

// TierChange reports whether the effect sets a food or water tier.
func (e ItemEffect) TierChange() bool { return e.FoodTier != "" || e.WaterTier != "" }

// Requirement declares an item's purchase prerequisites. Zero values mean
// no gate of that kind.
type Requirement struct {
	MinDay          int
	MinHouses       int
	FoodTierAtLeast FoodTier
	WaterTier       WaterTier
	Upgrade         string
}

// Item is one entry in the shop catalog.
type Item struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Type        ItemType
	Breed       BreedTag // rabbit items only
	Effect      ItemEffect
	Requires    Requirement
}

// Items is the full shop catalog.
var Items = []Item{
	// Consumables
	{
		ID: "food-bundle", Name: "Vegetable Bundle", Cost: 10, Type: ItemFood,
		Description: "A bundle of fresh vegetables.",
		Effect:      ItemEffect{Food: 10},
	},
	{
		ID: "food-crate", Name: "Harvest Crate", Cost: 25, Type: ItemFood,
		Description: "A crate packed from the last harvest.",
		Effect:      ItemEffect{Food: 30},
	},
	{
		ID: "water-can", Name: "Watering Can", Cost: 8, Type: ItemWater,
		Description: "A full can of fresh water.",
		Effect:      ItemEffect{Water: 10},
	},
	{
		ID: "water-barrel", Name: "Rain Barrel", Cost: 20, Type: ItemWater,
		Description: "A barrel of collected rainwater.",
		Effect:      ItemEffect{Water: 30},
	},

	// Housing
	{
		ID: "rabbit-house", Name: "Rabbit House", Cost: 100, Type: ItemHouse,
		Description: "A sturdy hutch. Adds capacity for 4 rabbits.",
		Effect:      ItemEffect{Houses: 1},
	},

	// Rabbits
	{
		ID: "rabbit-common", Name: "Common Rabbit", Cost: 30, Type: ItemRabbit,
		Description: "Your everyday rabbit.",
		Breed:       BreedCommon,
		Effect:      ItemEffect{Rabbits: 1},
	},
	{
		ID: "rabbit-rare", Name: "Angora Rabbit", Cost: 80, Type: ItemRabbit,
		Description: "Fluffy and profitable.",
		Breed:       BreedRare,
		Effect:      ItemEffect{Rabbits: 1},
	},
	{
		ID: "rabbit-legendary", Name: "Golden Rabbit", Cost: 200, Type: ItemRabbit,
		Description: "A legendary earner.",
		Breed:       BreedLegendary,
		Effect:      ItemEffect{Rabbits: 1},
	},

	// Tier upgrades
	{
		ID: "lettuce-upgrade", Name: "Lettuce Garden", Cost: 100, Type: ItemUpgrade,
		Description: "Upgrade feed to lettuce. +20% coin earnings.",
		Effect:      ItemEffect{FoodTier: FoodLettuce},
	},
	{
		ID: "pellets-upgrade", Name: "Premium Pellets", Cost: 250, Type: ItemUpgrade,
		Description: "Upgrade feed to premium pellets. +50% coin earnings.",
		Effect:      ItemEffect{FoodTier: FoodPellets},
	},
	{
		ID: "purified-water", Name: "Water Filter", Cost: 150, Type: ItemUpgrade,
		Description: "Purified water doubles breeding output.",
		Effect:      ItemEffect{WaterTier: WaterPurified},
	},

	// Generic upgrades
	{
		ID: "training-grounds", Name: "Training Grounds", Cost: 200, Type: ItemUpgrade,
		Description: "+25% coin earnings.",
		Effect:      ItemEffect{CoinMultiplier: 1.25},
		Requires:    Requirement{FoodTierAtLeast: FoodLettuce},
	},
	{
		ID: "bunny-nursery", Name: "Bunny Nursery", Cost: 180, Type: ItemUpgrade,
		Description: "+25% breeding output.",
		Effect:      ItemEffect{BreedingBonusMultiplier: 1.25},
		Requires:    Requirement{WaterTier: WaterPurified},
	},
	{
		ID: "mega-hutch", Name: "Mega Hutch Extension", Cost: 300, Type: ItemUpgrade,
		Description: "+2 capacity per house.",
		Effect:      ItemEffect{CapacityBonusPerHouse: 2},
		Requires:    Requirement{MinHouses: 2},
	},
	{
		ID: "fertilizer-system", Name: "Fertilizer System", Cost: 160, Type: ItemUpgrade,
		Description: "-25% food consumption.",
		Effect:      ItemEffect{FoodConsumptionMultiplier: 0.75},
		Requires:    Requirement{FoodTierAtLeast: FoodLettuce},
	},
	{
		ID: "hydration-station", Name: "Hydration Station", Cost: 160, Type: ItemUpgrade,
		Description: "-25% water consumption.",
		Effect:      ItemEffect{WaterConsumptionMultiplier: 0.75},
		Requires:    Requirement{WaterTier: WaterPurified},
	},
	{
		ID: "carrot-farm", Name: "Carrot Farm", Cost: 220, Type: ItemUpgrade,
		Description: "+10 food per day.",
		Effect:      ItemEffect{PassiveFoodPerDay: 10},
		Requires:    Requirement{MinDay: 10},
	},
	{
		ID: "deep-well", Name: "Deep Well", Cost: 220, Type: ItemUpgrade,
		Description: "+10 water per day.",
		Effect:      ItemEffect{PassiveWaterPerDay: 10},
		Requires:    Requirement{MinDay: 10},
	},
	{
		ID: "solar-panels", Name: "Solar Panels", Cost: 260, Type: ItemUpgrade,
		Description: "+10 coins per day.",
		Effect:      ItemEffect{PassiveCoinsPerDay: 10},
		Requires:    Requirement{MinDay: 20},
	},
	{
		ID: "market-stall", Name: "Market Stall", Cost: 150, Type: ItemUpgrade,
		Description: "+15% coin earnings.",
		Effect:      ItemEffect{CoinMultiplier: 1.15},
		Requires:    Requirement{Upgrade: "training-grounds"},
	},
	{
		ID: "logistics-network", Name: "Logistics Network", Cost: 240, Type: ItemUpgrade,
		Description: "Extra 10% shop discount on consumables and housing.",
		Effect:      ItemEffect{ShopDiscountBonus: 0.10},
		Requires:    Requirement{MinDay: 15, MinHouses: 3},
	},
	{
		ID: "purifier-plus", Name: "Purifier Plus", Cost: 280, Type: ItemUpgrade,
		Description: "+25% breeding output.",
		Effect:      ItemEffect{BreedingBonusMultiplier: 1.25},
		Requires:    Requirement{WaterTier: WaterPurified},
	},
}

// ItemByID looks up a shop item; ok is false for unknown ids.
func ItemByID(id string) (Item, bool) {
	for _, it := range Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
