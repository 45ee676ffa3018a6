// Package classify maps a part onto the retail categories worth searching.
package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/store"
	"github.com/partscout/partscout/internal/logger"
)

// maxTags caps the classifier output.
const maxTags = 4

// Service is the store-type classifier. This call never fails the pipeline:
// oracle errors, out-of-set tags, and empty results all fall back to the full
// tag set, which maximizes candidate recall when classification is impossible.
type Service struct {
	oracle Oracle
}

// New creates a classifier. oracle may be nil (heuristic-only deployments).
func New(oracle Oracle) *Service {
	return &Service{oracle: oracle}
}

// Classify returns 1-4 tags from the closed set for the given part.
func (s *Service) Classify(ctx context.Context, part domain.Part) []store.TypeTag {
	log := logger.FromContext(ctx)

	if s.oracle == nil {
		return store.AllTags()
	}

	raw, err := s.oracle.ClassifyStoreTypes(ctx, part.Name, part.Category)
	if err != nil {
		log.Warn("store type classification failed, using full tag set", zap.Error(err))
		return store.AllTags()
	}

	tags := store.MatchTags(raw)
	if len(tags) == 0 {
		log.Warn("oracle returned no valid tags, using full tag set",
			zap.Strings("raw_tags", raw))
		return store.AllTags()
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}
