package candidates

import (
	"context"

	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/store"
)

// Provider is the external places-search provider.
type Provider interface {
	Nearby(ctx context.Context, center geo.Point, radiusMeters int, category string) ([]store.Candidate, error)
}
