package verify

import (
	"context"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/store"
)

// Oracle scores candidate stores for availability. May be unavailable (nil).
type Oracle interface {
	ScoreCandidates(ctx context.Context, part domain.Part, candidates []store.Candidate) ([]domain.CandidateScore, error)
}
