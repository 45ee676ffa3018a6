// Package rank enforces the distance contract and orders the surviving
// candidates.
package rank

import (
	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/store"
)

// Filter recomputes every candidate's distance from origin and drops any that
// strictly exceed the budget. This is the single authoritative enforcement
// point for the distance bound: upstream providers and fallback generators
// are never trusted to have honored it.
func Filter(cands []store.Candidate, origin geo.Point, maxDistanceMiles float64) []store.Candidate {
	kept := make([]store.Candidate, 0, len(cands))
	for _, c := range cands {
		c.DistanceMiles = geo.DistanceMiles(origin, c.Location)
		if c.DistanceMiles > maxDistanceMiles {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
