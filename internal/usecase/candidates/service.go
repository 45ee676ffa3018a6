// Package candidates discovers raw candidate stores around the user location.
package candidates

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/store"
	"github.com/partscout/partscout/internal/logger"
)

// Service queries the places provider per category tag, deduplicates, and
// applies the first distance pass. The distance filter downstream re-enforces
// the budget; this pass just avoids carrying hopeless candidates forward.
type Service struct {
	provider Provider
}

// New creates a candidate search service.
func New(provider Provider) *Service {
	return &Service{provider: provider}
}

// Search returns operational candidates within the distance budget.
// Returns ErrUpstreamUnavailable only when every provider call failed;
// partial provider failures degrade to whatever categories did respond.
func (s *Service) Search(
	ctx context.Context, origin geo.Point, tags []store.TypeTag, maxDistanceMiles float64,
) ([]store.Candidate, error) {
	log := logger.FromContext(ctx)

	radius := int(math.Ceil(maxDistanceMiles * geo.MetersPerMile))

	var (
		results  []store.Candidate
		seen     = make(map[string]struct{})
		lastErr  error
		failures int
	)

	for _, tag := range tags {
		found, err := s.provider.Nearby(ctx, origin, radius, string(tag))
		if err != nil {
			failures++
			lastErr = err
			log.Warn("places lookup failed for category",
				zap.String("category", string(tag)), zap.Error(err))
			continue
		}

		for _, c := range found {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}

			if !c.Operational {
				continue
			}

			c.DistanceMiles = geo.DistanceMiles(origin, c.Location)
			if c.DistanceMiles > maxDistanceMiles {
				continue
			}
			results = append(results, c)
		}
	}

	if failures == len(tags) && len(tags) > 0 {
		return nil, fmt.Errorf("all place lookups failed: %w: %w", lastErr, domain.ErrUpstreamUnavailable)
	}

	return results, nil
}
