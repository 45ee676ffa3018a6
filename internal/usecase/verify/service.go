// Package verify assigns each candidate a likelihood (0-100) that the store
// stocks the part, via the oracle when available and a deterministic heuristic
// otherwise. Both modes produce the same output contract: every surviving
// candidate carries a likelihood and a short reason.
package verify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/store"
	"github.com/partscout/partscout/internal/logger"
)

// oracleBatchLimit bounds how many candidates are submitted per oracle call.
const oracleBatchLimit = 15

// Service is the availability verifier.
type Service struct {
	oracle  Oracle
	weights Weights
}

// New creates a verifier. oracle may be nil (heuristic-only deployments).
func New(oracle Oracle, weights Weights) *Service {
	return &Service{oracle: oracle, weights: weights}
}

// Verify returns the candidates whose likelihood meets the minimum threshold.
// An oracle hiccup never erases all candidates: any oracle failure, malformed
// response, or zero-qualifying result falls through to the heuristic scorer.
func (s *Service) Verify(
	ctx context.Context, cands []store.Candidate, part domain.Part,
) []store.Candidate {
	if len(cands) == 0 {
		return nil
	}

	if s.oracle != nil {
		if verified, ok := s.verifyWithOracle(ctx, cands, part); ok {
			return verified
		}
	}

	return s.verifyHeuristic(cands)
}

func (s *Service) verifyWithOracle(
	ctx context.Context, cands []store.Candidate, part domain.Part,
) ([]store.Candidate, bool) {
	log := logger.FromContext(ctx)

	batch := cands
	if len(batch) > oracleBatchLimit {
		batch = batch[:oracleBatchLimit]
	}

	scores, err := s.oracle.ScoreCandidates(ctx, part, batch)
	if err != nil {
		log.Warn("oracle availability scoring failed, using heuristic scorer", zap.Error(err))
		return nil, false
	}

	var verified []store.Candidate
	for _, sc := range scores {
		if sc.Index < 0 || sc.Index >= len(batch) {
			continue
		}
		likelihood := clamp(sc.Likelihood)
		if likelihood < s.weights.MinLikelihood {
			continue
		}

		c := batch[sc.Index]
		c.Likelihood = likelihood
		c.Reason = sc.Reason
		if c.Reason == "" {
			c.Reason = "oracle availability estimate"
		}
		verified = append(verified, c)
	}

	if len(verified) == 0 {
		log.Info("oracle returned no qualifying candidates, using heuristic scorer",
			zap.Int("scored", len(scores)))
		return nil, false
	}
	return verified, true
}

func (s *Service) verifyHeuristic(cands []store.Candidate) []store.Candidate {
	var verified []store.Candidate
	for _, c := range cands {
		likelihood, reason := s.Score(c)
		if likelihood < s.weights.MinLikelihood {
			continue
		}
		c.Likelihood = likelihood
		c.Reason = reason
		verified = append(verified, c)
	}
	return verified
}

// Score runs the heuristic rule table against one candidate. Exported so the
// fallback-free scoring path can be exercised directly in tests.
func (s *Service) Score(c store.Candidate) (int, string) {
	name := strings.ToLower(c.Name)

	if excluded, hit := s.excluded(name, c.Types); excluded {
		return 0, "matches excluded business category: " + hit
	}

	score := s.weights.Base
	var reasons []string

	for _, rule := range s.weights.Keywords {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				score += rule.Bonus
				reasons = append(reasons, rule.Label)
				break
			}
		}
	}

	for _, tag := range c.Tags {
		if bonus, ok := s.weights.Tags[tag]; ok {
			score += bonus
			reasons = append(reasons, string(tag))
		}
	}

	for _, rule := range s.weights.Proximity {
		if c.DistanceMiles <= rule.MaxMiles {
			score += rule.Bonus
			reasons = append(reasons, "nearby")
			break
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "no availability signals")
	}

	return clamp(score), strings.Join(reasons, ", ")
}

func (s *Service) excluded(name string, types []string) (bool, string) {
	for _, ex := range s.weights.Exclusions {
		if strings.Contains(name, ex) {
			return true, ex
		}
		for _, t := range types {
			if strings.Contains(strings.ToLower(t), ex) {
				return true, ex
			}
		}
	}
	return false, ""
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
