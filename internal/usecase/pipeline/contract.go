package pipeline

import (
	"context"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/search"
	"github.com/partscout/partscout/internal/domain/store"
)

// Classifier picks the retail categories to search for a part. Never fails.
type Classifier interface {
	Classify(ctx context.Context, part domain.Part) []store.TypeTag
}

// Searcher discovers raw candidates around the origin.
type Searcher interface {
	Search(ctx context.Context, origin geo.Point, tags []store.TypeTag, maxDistanceMiles float64) ([]store.Candidate, error)
}

// Verifier scores availability and drops candidates below the minimum.
type Verifier interface {
	Verify(ctx context.Context, cands []store.Candidate, part domain.Part) []store.Candidate
}

// Pricer estimates the part's price at a given store.
type Pricer interface {
	Estimate(part domain.Part, r store.Ranked) store.PriceEstimate
}

// Generator synthesizes candidates when external sources are unavailable.
type Generator interface {
	Generate(origin geo.Point, maxDistanceMiles float64) []store.Candidate
}

// ResultCache memoizes ranked results for equivalent recent requests.
type ResultCache interface {
	Get(ctx context.Context, req search.Request) ([]store.Ranked, bool)
	Put(ctx context.Context, req search.Request, results []store.Ranked)
}
