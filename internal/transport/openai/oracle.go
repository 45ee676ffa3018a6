// Package openai adapts an OpenAI-compatible chat-completion endpoint into the
// pipeline's classification oracle. The model is not a type-safe API: every
// response goes through strict JSON extraction, and extraction failure is
// treated the same as provider unavailability.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/store"
	"github.com/partscout/partscout/internal/metrics"
)

// scoreBatchLimit is the maximum number of candidates submitted per scoring call.
const scoreBatchLimit = 15

// Oracle wraps a chat-completion client for store-type classification and
// candidate availability scoring.
type Oracle struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the oracle settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewOracle creates a classification oracle over an OpenAI-compatible API.
func NewOracle(cfg *Config) *Oracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Oracle{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger,
	}
}

// ClassifyStoreTypes asks the oracle which retail categories to search for a part.
// Returns raw tag strings; the caller validates them against the closed set.
func (o *Oracle) ClassifyStoreTypes(ctx context.Context, partName, partCategory string) ([]string, error) {
	prompt := fmt.Sprintf(
		"A customer needs to buy this appliance replacement part from a physical store today:\n"+
			"Part: %s\nCategory: %s\n\n"+
			"Which retail store categories are most likely to stock it? Respond with only a JSON array "+
			"of up to 4 strings drawn from exactly this set: "+
			`["hardware_store","home_goods_store","electronics_store","generic_store"]`,
		partName, orUnknown(partCategory),
	)

	raw, err := o.complete(ctx, "classify_tags", prompt)
	if err != nil {
		return nil, err
	}

	data, err := extractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("%w: tag array: %w", domain.ErrMalformedResponse, err)
	}
	return tags, nil
}

// ScoreCandidates asks the oracle to estimate, per candidate, the likelihood
// (0-100) that the store stocks the part. At most 15 candidates are submitted.
func (o *Oracle) ScoreCandidates(
	ctx context.Context, part domain.Part, candidates []store.Candidate,
) ([]domain.CandidateScore, error) {
	if len(candidates) > scoreBatchLimit {
		candidates = candidates[:scoreBatchLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"A customer is looking for this appliance replacement part: %s\n\n"+
			"For each store below, estimate the likelihood (integer 0-100) that the store stocks this part, "+
			"with a short reason. Respond with only a JSON array of objects "+
			`{"index": <int>, "likelihood": <int>, "reason": <string>}.`+"\n\nStores:\n",
		part.Describe(),
	)
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s | %s | types: %s | %s away\n",
			i, c.Name, orUnknown(c.Address), strings.Join(c.Types, ","), formatDistance(c.DistanceMiles))
	}

	raw, err := o.complete(ctx, "score_candidates", b.String())
	if err != nil {
		return nil, err
	}

	data, err := extractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	var scores []domain.CandidateScore
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: score array: %w", domain.ErrMalformedResponse, err)
	}
	return scores, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (o *Oracle) HealthCheck(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// complete runs one bounded chat-completion call and returns the raw content.
func (o *Oracle) complete(ctx context.Context, call, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You estimate which physical retail stores carry appliance replacement parts. " +
					"Always answer with JSON only.",
			},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
	})

	duration := time.Since(start)

	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues(call, "error").Inc()
		return "", parseAPIError(err)
	}

	metrics.OracleRequestsTotal.WithLabelValues(call, "success").Inc()
	metrics.OracleRequestDuration.WithLabelValues(call).Observe(duration.Seconds())

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrUpstreamUnavailable so the pipeline
// falls through to the next tier.
func parseAPIError(err error) error {
	wrap := domain.ErrUpstreamUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("oracle API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("oracle API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("oracle request failed: %w", wrap)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func formatDistance(mi float64) string {
	return fmt.Sprintf("%.1f mi", mi)
}
