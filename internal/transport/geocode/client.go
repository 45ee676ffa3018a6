// Package geocode resolves postal codes to coordinates via a zippopotam-style
// HTTP API. The geocoder is an opaque upstream; the pipeline only sees a Point.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
)

// Client resolves postal codes to coordinates.
type Client struct {
	httpClient *http.Client
	baseURL    string
	country    string
	logger     *zap.Logger
}

// Config holds the geocoder settings.
type Config struct {
	BaseURL string
	Country string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a geocoder client.
func NewClient(cfg *Config) *Client {
	country := cfg.Country
	if country == "" {
		country = "us"
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
		baseURL:    cfg.BaseURL,
		country:    country,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// Geocode resolves a postal code to a coordinate pair.
func (c *Client) Geocode(ctx context.Context, postalCode string) (geo.Point, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", c.baseURL, c.country, postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode request: %w: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return geo.Point{}, fmt.Errorf("%w: unknown postal code %q", domain.ErrInvalidInput, postalCode)
	}
	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("geocoder HTTP %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return geo.Point{}, fmt.Errorf("decode geocoder response: %w: %w", err, domain.ErrMalformedResponse)
	}
	if len(parsed.Places) == 0 {
		return geo.Point{}, fmt.Errorf("%w: no location for postal code %q", domain.ErrInvalidInput, postalCode)
	}

	lat, latErr := strconv.ParseFloat(parsed.Places[0].Latitude, 64)
	lng, lngErr := strconv.ParseFloat(parsed.Places[0].Longitude, 64)
	if latErr != nil || lngErr != nil {
		return geo.Point{}, fmt.Errorf("parse geocoder coordinates: %w", domain.ErrMalformedResponse)
	}

	p := geo.Point{Lat: lat, Lng: lng}
	if !geo.Valid(p) {
		return geo.Point{}, fmt.Errorf("geocoder returned out-of-range point %v: %w", p, domain.ErrMalformedResponse)
	}
	return p, nil
}
