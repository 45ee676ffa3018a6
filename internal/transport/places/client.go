// Package places is the HTTP client for the external places-search provider
// (Google Places Nearby Search wire format).
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/store"
	"github.com/partscout/partscout/internal/metrics"
)

// MaxRadiusMeters is the provider's own search radius ceiling.
const MaxRadiusMeters = 50_000

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client queries the places provider for nearby businesses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a places provider client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// wire types for the provider response.
type nearbyResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	BusinessStatus   string   `json:"business_status"`
	Types            []string `json:"types"`
	PhoneNumber      string   `json:"formatted_phone_number"`
	Website          string   `json:"website"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Nearby returns businesses of the given category within radiusMeters of center.
// The radius is clamped to the provider maximum. Zero results is not an error.
func (c *Client) Nearby(
	ctx context.Context, center geo.Point, radiusMeters int, category string,
) ([]store.Candidate, error) {
	if radiusMeters > MaxRadiusMeters {
		radiusMeters = MaxRadiusMeters
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", category)
	q.Set("key", c.apiKey)

	reqURL := c.baseURL + "/nearbysearch/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PlacesRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("places request: %w: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.PlacesRequestDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.PlacesRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("places HTTP %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var parsed nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.PlacesRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode places response: %w: %w", err, domain.ErrMalformedResponse)
	}

	switch parsed.Status {
	case "OK", "ZERO_RESULTS":
		// fall through
	default:
		metrics.PlacesRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("places status %s (%s): %w",
			parsed.Status, parsed.ErrorMessage, domain.ErrUpstreamUnavailable)
	}

	metrics.PlacesRequestsTotal.WithLabelValues("success").Inc()

	candidates := make([]store.Candidate, 0, len(parsed.Results))
	for _, p := range parsed.Results {
		candidates = append(candidates, toCandidate(p))
	}
	return candidates, nil
}

func toCandidate(p placeResult) store.Candidate {
	address := p.Vicinity
	if address == "" {
		address = p.FormattedAddress
	}

	// The provider omits business_status for some listings; treat those as open.
	operational := p.BusinessStatus == "" || p.BusinessStatus == "OPERATIONAL"

	return store.Candidate{
		ID:          p.PlaceID,
		Name:        p.Name,
		Address:     address,
		Location:    geo.Point{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		Types:       p.Types,
		Tags:        store.MatchTags(p.Types),
		Rating:      p.Rating,
		RatingCount: p.UserRatingsTotal,
		Phone:       p.PhoneNumber,
		Website:     p.Website,
		Operational: operational,
	}
}
