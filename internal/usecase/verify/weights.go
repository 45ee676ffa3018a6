package verify

import "github.com/partscout/partscout/internal/domain/store"

// KeywordRule awards a bonus when any of its keywords appears in a candidate
// name. Rules are cumulative across distinct rules; within a rule only the
// single (strongest) hit counts.
type KeywordRule struct {
	Label    string
	Keywords []string
	Bonus    int
}

// ProximityRule awards a bonus for candidates at or under MaxMiles.
type ProximityRule struct {
	MaxMiles float64
	Bonus    int
}

// Weights is the heuristic scorer's rule table. Lifting every constant in
// here keeps the scorer testable rule by rule.
type Weights struct {
	Base          int
	MinLikelihood int
	Keywords      []KeywordRule
	Tags          map[store.TypeTag]int
	Proximity     []ProximityRule
	// Exclusions force the score to exactly 0 when matched against a
	// candidate's name or raw provider types, overriding every bonus.
	Exclusions []string
}

// DefaultWeights returns the canonical rule table.
func DefaultWeights() Weights {
	return Weights{
		Base:          20,
		MinLikelihood: 60,
		Keywords: []KeywordRule{
			{Label: "appliance parts specialist", Bonus: 55, Keywords: []string{
				"appliance part", "appliance repair", "parts depot", "parts center",
			}},
			{Label: "big-box home improvement", Bonus: 50, Keywords: []string{
				"home depot", "lowe's", "lowes", "menards", "ace hardware", "true value",
			}},
			{Label: "appliance retailer", Bonus: 45, Keywords: []string{"appliance"}},
			{Label: "hardware store", Bonus: 40, Keywords: []string{"hardware"}},
			{Label: "repair or parts shop", Bonus: 30, Keywords: []string{"repair", "parts"}},
			{Label: "trade supply", Bonus: 25, Keywords: []string{"plumbing supply", "electrical supply", "supply co"}},
		},
		Tags: map[store.TypeTag]int{
			store.TagHardware:    30,
			store.TagHomeGoods:   20,
			store.TagElectronics: 15,
			store.TagGeneric:     15,
		},
		Proximity: []ProximityRule{
			{MaxMiles: 1, Bonus: 15},
			{MaxMiles: 2, Bonus: 10},
			{MaxMiles: 3, Bonus: 5},
		},
		Exclusions: []string{
			"restaurant", "cafe", "coffee", "bakery", "pub", "tavern", "food", "grill", "diner",
			"clothing", "apparel", "shoe", "boutique", "jewelry",
			"beauty", "salon", "barber", "spa", "nail",
			"gas station", "fuel",
			"bank", "atm", "credit union", "insurance",
			"pharmacy", "drugstore",
			"car dealer", "car repair", "car wash", "auto", "tire",
			"hotel", "motel", "lodging", "hostel",
			"church", "temple", "mosque", "synagogue", "school", "university",
			"gym", "fitness",
		},
	}
}
