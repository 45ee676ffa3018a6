package rank

import (
	"math"
	"sort"

	"github.com/partscout/partscout/internal/domain/store"
)

// Params tunes the relevance ordering.
type Params struct {
	// PenaltyPerMile is subtracted from likelihood per mile of distance.
	PenaltyPerMile float64
	// TieBreakWindow is the score difference under which distance, not raw
	// relevance, decides ordering.
	TieBreakWindow float64
}

// DefaultParams returns the canonical ranking constants.
func DefaultParams() Params {
	return Params{PenaltyPerMile: 7.0, TieBreakWindow: 12.0}
}

// Rank orders candidates by relevance and truncates to the result cap.
//
// The comparator is two-level: descending relevance, except that two
// candidates whose scores differ by less than the tie window are ordered by
// ascending distance instead. A pure relevance sort would let a slightly more
// likely store 4 miles away beat an equally likely store half a mile away,
// which is wrong for local shopping.
func Rank(cands []store.Candidate, params Params, resultCap int) []store.Ranked {
	ranked := make([]store.Ranked, 0, len(cands))
	for _, c := range cands {
		ranked = append(ranked, store.Ranked{
			Candidate:      c,
			Availability:   store.LabelFor(c.Likelihood),
			RelevanceScore: float64(c.Likelihood) - c.DistanceMiles*params.PenaltyPerMile,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		diff := ranked[i].RelevanceScore - ranked[j].RelevanceScore
		if math.Abs(diff) < params.TieBreakWindow {
			return ranked[i].DistanceMiles < ranked[j].DistanceMiles
		}
		return diff > 0
	})

	if resultCap > 0 && len(ranked) > resultCap {
		ranked = ranked[:resultCap]
	}
	return ranked
}
