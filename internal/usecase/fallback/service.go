// Package fallback synthesizes plausible store profiles when every external
// source is unavailable. A last-resort presentation aid, not a data source:
// every generated candidate carries the synthetic provenance marker.
package fallback

import (
	"fmt"
	"math"

	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/store"
)

// milesPerDegreeLat is close enough for small synthetic offsets.
const milesPerDegreeLat = 69.0

// archetype is a store profile with a fixed likelihood reflecting how often
// that kind of store carries generic appliance parts, placed at a bearing and
// a fraction of the distance budget.
type archetype struct {
	name       string
	tag        store.TypeTag
	types      []string
	likelihood int
	bearingDeg float64
	budgetFrac float64
}

var archetypes = []archetype{
	{
		name: "The Home Depot", tag: store.TagHardware,
		types: []string{"hardware_store", "home_improvement"},
		likelihood: 90, bearingDeg: 45, budgetFrac: 0.50,
	},
	{
		name: "Lowe's Home Improvement", tag: store.TagHardware,
		types: []string{"hardware_store", "home_improvement"},
		likelihood: 88, bearingDeg: 135, budgetFrac: 0.65,
	},
	{
		name: "Ace Hardware", tag: store.TagHardware,
		types: []string{"hardware_store"},
		likelihood: 84, bearingDeg: 225, budgetFrac: 0.35,
	},
	{
		name: "Appliance Parts Center", tag: store.TagHardware,
		types: []string{"appliance_parts"},
		likelihood: 93, bearingDeg: 315, budgetFrac: 0.75,
	},
}

// Service generates synthetic candidates.
type Service struct{}

// New creates a fallback generator.
func New() *Service {
	return &Service{}
}

// Generate returns 3-5 synthetic candidates placed within the distance budget.
// Output flows through the same distance filter and ranker as real results,
// so the distance contract is enforced on synthetic stores too.
func (s *Service) Generate(origin geo.Point, maxDistanceMiles float64) []store.Candidate {
	cands := make([]store.Candidate, 0, len(archetypes))
	for i, a := range archetypes {
		miles := a.budgetFrac * maxDistanceMiles
		loc := offset(origin, miles, a.bearingDeg)

		cands = append(cands, store.Candidate{
			ID:            fmt.Sprintf("synthetic-%d", i),
			Name:          a.name,
			Address:       "near your area",
			Location:      loc,
			Types:         a.types,
			Tags:          []store.TypeTag{a.tag},
			Operational:   true,
			DistanceMiles: geo.DistanceMiles(origin, loc),
			Likelihood:    a.likelihood,
			Reason:        "estimated from store type; live data unavailable",
			Synthetic:     true,
		})
	}
	return cands
}

// offset places a point miles away from origin along the given bearing.
func offset(origin geo.Point, miles, bearingDeg float64) geo.Point {
	rad := bearingDeg * math.Pi / 180
	dLat := miles * math.Cos(rad) / milesPerDegreeLat

	milesPerDegreeLng := milesPerDegreeLat * math.Cos(origin.Lat*math.Pi/180)
	if milesPerDegreeLng < 1 {
		// Near the poles longitude degrees collapse; keep the offset sane.
		milesPerDegreeLng = 1
	}
	dLng := miles * math.Sin(rad) / milesPerDegreeLng

	return geo.Point{Lat: origin.Lat + dLat, Lng: origin.Lng + dLng}
}
