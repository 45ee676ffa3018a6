// Package pipeline orchestrates the store discovery stages:
// classify -> search -> verify -> filter -> rank -> price, with a result
// cache in front and the synthetic generator as the last fallback tier.
//
// The defining property of this service is that it always returns some result
// set, real or synthetic, honoring the distance bound. Upstream failures are
// recovered locally; only invalid input surfaces to the caller.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain/search"
	"github.com/partscout/partscout/internal/domain/store"
	"github.com/partscout/partscout/internal/logger"
	"github.com/partscout/partscout/internal/metrics"
	"github.com/partscout/partscout/internal/usecase/rank"
)

// Advisory strings returned with empty result sets.
const (
	AdvisoryWiderRadius       = "no matching stores in range; try a larger search radius"
	AdvisoryDifferentLocation = "no stores found near this location; try a different postal code"
)

// Response is the pipeline output. Stores is never nil.
type Response struct {
	Stores   []store.Ranked
	Advisory string
	// Degraded is true when results came from the synthetic fallback
	// generator rather than live data.
	Degraded bool
}

// Service runs the discovery pipeline. All stages are injected; state is
// request-scoped except the optional cache.
type Service struct {
	classifier Classifier
	searcher   Searcher
	verifier   Verifier
	pricer     Pricer
	generator  Generator
	cache      ResultCache
	params     rank.Params
}

// New creates the pipeline service. cache may be nil.
func New(
	classifier Classifier,
	searcher Searcher,
	verifier Verifier,
	pricer Pricer,
	generator Generator,
	cache ResultCache,
	params rank.Params,
) *Service {
	return &Service{
		classifier: classifier,
		searcher:   searcher,
		verifier:   verifier,
		pricer:     pricer,
		generator:  generator,
		cache:      cache,
		params:     params,
	}
}

// Search runs the full pipeline for a validated request.
func (s *Service) Search(ctx context.Context, req search.Request) Response {
	log := logger.FromContext(ctx)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, req); ok {
			log.Debug("served from result cache", zap.Int("stores", len(cached)))
			return Response{Stores: cached}
		}
	}

	tags := s.classifier.Classify(ctx, req.Part())

	cands, err := s.searcher.Search(ctx, req.Origin(), tags, req.MaxDistanceMiles())
	if err != nil || len(cands) == 0 {
		if err != nil {
			log.Warn("candidate search unavailable, generating synthetic results", zap.Error(err))
		} else {
			log.Info("candidate search returned nothing, generating synthetic results")
		}
		return s.degraded(ctx, req)
	}

	verified := s.verifier.Verify(ctx, cands, req.Part())
	if len(verified) == 0 {
		// Real stores exist nearby but none plausibly stocks the part.
		// Synthetic profiles would only mislead here; report empty.
		log.Info("no candidate passed availability verification",
			zap.Int("candidates", len(cands)))
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return Response{Stores: []store.Ranked{}, Advisory: AdvisoryWiderRadius}
	}

	results := s.finish(req, verified)
	if len(results) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return Response{Stores: []store.Ranked{}, Advisory: AdvisoryWiderRadius}
	}

	if s.cache != nil {
		s.cache.Put(ctx, req, results)
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	log.Info("store search completed",
		zap.Int("candidates", len(cands)),
		zap.Int("verified", len(verified)),
		zap.Int("results", len(results)),
	)
	return Response{Stores: results}
}

// degraded serves the synthetic fallback tier. Synthetic results share the
// filter/rank/price tail with real ones and are never cached.
func (s *Service) degraded(ctx context.Context, req search.Request) Response {
	metrics.FallbackTotal.Inc()

	results := s.finish(req, s.generator.Generate(req.Origin(), req.MaxDistanceMiles()))
	if len(results) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return Response{Stores: []store.Ranked{}, Advisory: AdvisoryDifferentLocation, Degraded: true}
	}

	metrics.SearchesTotal.WithLabelValues("degraded").Inc()
	logger.FromContext(ctx).Info("served synthetic fallback results",
		zap.Int("results", len(results)))
	return Response{Stores: results, Degraded: true}
}

// finish applies the authoritative distance filter, ranks, and prices.
func (s *Service) finish(req search.Request, cands []store.Candidate) []store.Ranked {
	filtered := rank.Filter(cands, req.Origin(), req.MaxDistanceMiles())
	results := rank.Rank(filtered, s.params, req.ResultCap())
	for i := range results {
		results[i].EstimatedPrice = s.pricer.Estimate(req.Part(), results[i])
	}
	return results
}
