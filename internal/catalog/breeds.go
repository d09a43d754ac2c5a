// Package catalog holds the static game data: rabbit breeds, random events,
// shop items and achievements. Everything here is immutable lookup data
// loaded once at process start.
package catalog

// BreedTag identifies a rabbit breed.
type BreedTag string

const (
	BreedCommon    BreedTag = "common"
	BreedRare      BreedTag = "rare"
	BreedLegendary BreedTag = "legendary"
)

// Breed describes one rabbit breed's earning and breeding attributes.
type Breed struct {
	Tag            BreedTag
	Name           string
	CoinMultiplier float64
	BreedingRate   float64
	Description    string
}

var breeds = map[BreedTag]Breed{
	BreedCommon: {
		Tag:            BreedCommon,
		Name:           "Common Rabbit",
		CoinMultiplier: 1,
		BreedingRate:   1,
		Description:    "Your everyday rabbit. Reliable and steady.",
	},
	BreedRare: {
		Tag:            BreedRare,
		Name:           "Angora Rabbit",
		CoinMultiplier: 1.5,
		BreedingRate:   1.2,
		Description:    "A fluffy Angora rabbit. Produces 50% more coins.",
	},
	BreedLegendary: {
		Tag:            BreedLegendary,
		Name:           "Golden Rabbit",
		CoinMultiplier: 2.5,
		BreedingRate:   1.5,
		Description:    "A legendary golden rabbit. Massive coin boost.",
	},
}

// BreedByTag returns the breed for a tag, defaulting to common for
// unknown tags so old saves never break earnings.
func BreedByTag(tag BreedTag) Breed {
	if b, ok := breeds[tag]; ok {
		return b
	}
	return breeds[BreedCommon]
}

// FoodTier is the strictly ordered food quality upgrade path.
type FoodTier string

const (
	FoodCarrots FoodTier = "carrots"
	FoodLettuce FoodTier = "lettuce"
	FoodPellets FoodTier = "pellets"
)

// FoodTierRank returns the position of a tier on the upgrade path.
func FoodTierRank(t FoodTier) int {
	switch t {
	case FoodLettuce:
		return 1
	case FoodPellets:
		return 2
	default:
		return 0
	}
}

// FoodEfficiency returns the earnings multiplier granted by a food tier.
func FoodEfficiency(t FoodTier) float64 {
	switch t {
	case FoodPellets:
		return 1.5
	case FoodLettuce:
		return 1.2
	default:
		return 1
	}
}

// FoodTierDown returns the tier one step below t.
func FoodTierDown(t FoodTier) FoodTier {
	switch t {
	case FoodPellets:
		return FoodLettuce
	case FoodLettuce:
		return FoodCarrots
	default:
		return FoodCarrots
	}
}

// WaterTier is the single-step water quality upgrade.
type WaterTier string

const (
	WaterNormal   WaterTier = "normal"
	WaterPurified WaterTier = "purified"
)
