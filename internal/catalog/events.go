package catalog

// Rarity classifies how often an event is drawn.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// EventRabbitFever is the epidemic-start event. The engine gives it special
// handling beyond its declared effect.
const EventRabbitFever = "rabbit-fever"

// EventEffect carries the additive deltas an event applies. A zero
// BreedingFactor means the event does not touch breeding.
type EventEffect struct {
	Coins          int
	Food           int
	Water          int
	Rabbits        int
	Houses         int
	BreedingFactor float64
}

// Event is one entry in the random event table. Predation events declare
// the fraction range of the population they remove; for all others both
// bounds are zero.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"` // positive, negative or neutral
	Rarity      Rarity `json:"rarity"`
	Effect      EventEffect
	PredationMin float64
	PredationMax float64
}

// Predatory reports whether the event removes a random population fraction.
func (e Event) Predatory() bool { return e.PredationMax > 0 }

// Events is the full random event table, in catalog order.
var Events = []Event{
	{
		ID:          "generous-visitor",
		Name:        "Generous Visitor",
		Description: "A kind traveler leaves you a gift of 50 coins!",
		Type:        "positive",
		Rarity:      RarityCommon,
		Effect:      EventEffect{Coins: 50},
	},
	{
		ID:          "food-delivery",
		Name:        "Food Delivery",
		Description: "A local farmer drops off extra vegetables!",
		Type:        "positive",
		Rarity:      RarityCommon,
		Effect:      EventEffect{Food: 20},
	},
	{
		ID:          "rain-blessing",
		Name:        "Blessed Rain",
		Description: "Fresh rainwater fills your reserves!",
		Type:        "positive",
		Rarity:      RarityCommon,
		Effect:      EventEffect{Water: 25},
	},
	{
		ID:          "perfect-weather",
		Name:        "Perfect Weather",
		Description: "The ideal conditions boost breeding success!",
		Type:        "positive",
		Rarity:      RarityUncommon,
		Effect:      EventEffect{BreedingFactor: 2},
	},
	{
		ID:          "treasure-find",
		Name:        "Hidden Treasure",
		Description: "You discover a buried treasure worth 100 coins!",
		Type:        "positive",
		Rarity:      RarityRare,
		Effect:      EventEffect{Coins: 100},
	},
	{
		ID:          "wandering-rabbit",
		Name:        "Wandering Rabbit",
		Description: "A friendly rabbit joins your colony!",
		Type:        "positive",
		Rarity:      RarityUncommon,
		Effect:      EventEffect{Rabbits: 1},
	},
	{
		ID:          "supply-donation",
		Name:        "Supply Donation",
		Description: "A charity organization donates food and water!",
		Type:        "positive",
		Rarity:      RarityUncommon,
		Effect:      EventEffect{Food: 15, Water: 15},
	},
	{
		ID:          "lucky-day",
		Name:        "Lucky Day",
		Description: "Everything seems to be going your way! Bonus coins!",
		Type:        "positive",
		Rarity:      RarityRare,
		Effect:      EventEffect{Coins: 75},
	},
	{
		ID:          "free-house",
		Name:        "Gifted Hutch",
		Description: "A benefactor donates a sturdy new house!",
		Type:        "positive",
		Rarity:      RarityRare,
		Effect:      EventEffect{Houses: 1},
	},
	{
		ID:          "food-spoiled",
		Name:        "Food Spoiled",
		Description: "Some of your food has gone bad.",
		Type:        "negative",
		Rarity:      RarityCommon,
		Effect:      EventEffect{Food: -10},
	},
	{
		ID:          "water-leak",
		Name:        "Water Leak",
		Description: "A leak in your water tank wastes resources.",
		Type:        "negative",
		Rarity:      RarityCommon,
		Effect:      EventEffect{Water: -8},
	},
	{
		ID:          "tax-collector",
		Name:        "Tax Collector",
		Description: "The tax collector takes a portion of your earnings.",
		Type:        "negative",
		Rarity:      RarityCommon,
		Effect:      EventEffect{Coins: -30},
	},
	{
		ID:          "storm-damage",
		Name:        "Storm Damage",
		Description: "A storm damages some supplies.",
		Type:        "negative",
		Rarity:      RarityUncommon,
		Effect:      EventEffect{Food: -5, Water: -5, Coins: -20},
	},
	{
		ID:          "predator-scare",
		Name:        "Predator Scare",
		Description: "A predator frightens the rabbits, reducing breeding today.",
		Type:        "negative",
		Rarity:      RarityUncommon,
		Effect:      EventEffect{BreedingFactor: -0.5},
	},
	{
		ID:           "fox-attack",
		Name:         "Fox Attack",
		Description:  "A fox sneaks into the farm and eats some of your rabbits.",
		Type:         "negative",
		Rarity:       RarityUncommon,
		PredationMin: 0.01,
		PredationMax: 0.10,
	},
	{
		ID:           "wolf-raid",
		Name:         "Wolf Raid",
		Description:  "A wolf pack raids the farm, taking a share of your rabbits.",
		Type:         "negative",
		Rarity:       RarityUncommon,
		PredationMin: 0.05,
		PredationMax: 0.20,
	},
	{
		ID:           "bear-rampage",
		Name:         "Bear Rampage",
		Description:  "A bear goes on a rampage! Many rabbits are lost.",
		Type:         "negative",
		Rarity:       RarityRare,
		PredationMin: 0.10,
		PredationMax: 0.35,
	},
	{
		ID:          EventRabbitFever,
		Name:        "Rabbit Fever",
		Description: "A contagious fever is spreading! Breeding is heavily reduced and water needs spike on carrots. Cure or isolate.",
		Type:        "negative",
		Rarity:      RarityRare,
		Effect:      EventEffect{BreedingFactor: 0.25},
	},
	{
		ID:          "peaceful-day",
		Name:        "Peaceful Day",
		Description: "A calm, uneventful day on the farm.",
		Type:        "neutral",
		Rarity:      RarityCommon,
	},
	{
		ID:          "traveling-merchant",
		Name:        "Traveling Merchant",
		Description: "A merchant passes by but you have nothing to trade.",
		Type:        "neutral",
		Rarity:      RarityCommon,
	},
}

// EventsByRarity returns the events of one rarity tier, in catalog order.
func EventsByRarity(r Rarity) []Event {
	var out []Event
	for _, e := range Events {
		if e.Rarity == r {
			out = append(out, e)
		}
	}
	return out
}

// EventByID looks up an event; ok is false for unknown ids.
func EventByID(id string) (Event, bool) {
	for _, e := range Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}
