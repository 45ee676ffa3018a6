// Package pricing derives a per-store estimated price range for a part.
// Pure derivation, no external calls, deterministic given identical inputs.
package pricing

import (
	"math"
	"strings"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/store"
)

const (
	currency    = "USD"
	defaultBase = 50.0
	rangeSpread = 0.20 // ±20% display range
)

// categoryPrice maps a part-category keyword to a base price. First hit wins,
// so more specific keywords come first.
type categoryPrice struct {
	keyword string
	base    float64
}

var basePrices = []categoryPrice{
	{"compressor", 250},
	{"control board", 150},
	{"circuit board", 150},
	{"motor", 120},
	{"timer", 85},
	{"pump", 70},
	{"fan", 60},
	{"igniter", 55},
	{"thermostat", 45},
	{"element", 40},
	{"sensor", 38},
	{"valve", 35},
	{"switch", 30},
	{"latch", 28},
	{"handle", 28},
	{"belt", 25},
	{"seal", 22},
	{"gasket", 22},
	{"hose", 20},
	{"filter", 18},
}

// bigBoxChains get a small discount; specialty parts shops charge a premium.
var bigBoxKeywords = []string{"home depot", "lowe's", "lowes", "menards", "walmart", "target"}
var specialtyKeywords = []string{"appliance part", "parts depot", "parts center", "appliance repair"}

// Service estimates prices. Stateless.
type Service struct{}

// New creates a pricing estimator.
func New() *Service {
	return &Service{}
}

// Estimate derives the price estimate for a part at a given ranked store.
func (s *Service) Estimate(part domain.Part, r store.Ranked) store.PriceEstimate {
	base := baseFor(part)
	amount := base * storeAdjustment(r.Candidate) * likelihoodAdjustment(r.Likelihood)
	amount = round2(amount)

	return store.PriceEstimate{
		Amount:    amount,
		Currency:  currency,
		RangeLow:  round2(amount * (1 - rangeSpread)),
		RangeHigh: round2(amount * (1 + rangeSpread)),
	}
}

func baseFor(part domain.Part) float64 {
	text := strings.ToLower(part.Category + " " + part.Name)
	for _, cp := range basePrices {
		if strings.Contains(text, cp.keyword) {
			return cp.base
		}
	}
	return defaultBase
}

// storeAdjustment: large chains price slightly under, specialty shops slightly
// over, electronics retailers carry a small markup on appliance parts.
func storeAdjustment(c store.Candidate) float64 {
	name := strings.ToLower(c.Name)
	for _, kw := range specialtyKeywords {
		if strings.Contains(name, kw) {
			return 1.10
		}
	}
	for _, kw := range bigBoxKeywords {
		if strings.Contains(name, kw) {
			return 0.95
		}
	}
	for _, tag := range c.Tags {
		if tag == store.TagElectronics {
			return 1.05
		}
	}
	return 1.0
}

// likelihoodAdjustment: stores likelier to stock a part are assumed more
// competitive on its price.
func likelihoodAdjustment(likelihood int) float64 {
	switch {
	case likelihood >= 85:
		return 0.95
	case likelihood >= 70:
		return 1.0
	default:
		return 1.05
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
