// Package chi is the HTTP service boundary.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/search"
	"github.com/partscout/partscout/internal/domain/store"
	healthuc "github.com/partscout/partscout/internal/usecase/health"
	"github.com/partscout/partscout/internal/usecase/pipeline"
)

// Geocoder resolves postal codes to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, postalCode string) (geo.Point, error)
}

// Server exposes the store search pipeline over HTTP.
type Server struct {
	pipeline   *pipeline.Service
	health     *healthuc.Service
	geocoder   Geocoder
	logger     *zap.Logger
	defaultCap int
}

// NewServer creates an HTTP API server. geocoder may be nil; requests must
// then carry explicit coordinates.
func NewServer(
	pipe *pipeline.Service,
	health *healthuc.Service,
	geocoder Geocoder,
	logger *zap.Logger,
) *Server {
	return &Server{pipeline: pipe, health: health, geocoder: geocoder, logger: logger}
}

// WithDefaultResultCap sets the result count used when the request omits one.
func (s *Server) WithDefaultResultCap(n int) *Server {
	s.defaultCap = n
	return s
}

// Mount registers the API routes on the router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/v1/stores/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// --- Request/response wire types ---

type searchRequestJSON struct {
	Part struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Brand    string `json:"brand"`
	} `json:"part"`
	Origin           *geo.Point `json:"origin"`
	PostalCode       string     `json:"postalCode"`
	MaxDistanceMiles float64    `json:"maxDistanceMiles"`
	ResultCap        int        `json:"resultCap"`
}

type rankedStoreJSON struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Address           string              `json:"address,omitempty"`
	Location          geo.Point           `json:"location"`
	DistanceMiles     float64             `json:"distanceMiles"`
	DistanceFormatted string              `json:"distanceFormatted"`
	Likelihood        int                 `json:"likelihood"`
	Availability      string              `json:"availability"`
	Reason            string              `json:"reason,omitempty"`
	EstimatedPrice    store.PriceEstimate `json:"estimatedPrice"`
	Phone             string              `json:"phone,omitempty"`
	Website           string              `json:"website,omitempty"`
	Synthetic         bool                `json:"synthetic"`
}

type searchResponseJSON struct {
	Stores   []rankedStoreJSON `json:"stores"`
	Advisory string            `json:"advisory,omitempty"`
	Degraded bool              `json:"degraded"`
}

type errorResponseJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Handlers ---

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequestJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
		return
	}

	ctx := r.Context()

	origin, err := s.resolveOrigin(ctx, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	part := domain.Part{
		Name:     body.Part.Name,
		Category: body.Part.Category,
		Brand:    body.Part.Brand,
	}

	resultCap := body.ResultCap
	if resultCap <= 0 {
		resultCap = s.defaultCap
	}

	req, err := search.NewRequest(part, origin, body.MaxDistanceMiles, resultCap)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	resp := s.pipeline.Search(ctx, req)
	writeJSON(w, http.StatusOK, toSearchResponse(resp))
}

// resolveOrigin picks explicit coordinates or geocodes the postal code.
// A request with neither, or with an unusable geocoder, is invalid input.
func (s *Server) resolveOrigin(ctx context.Context, body searchRequestJSON) (geo.Point, error) {
	if body.Origin != nil {
		return *body.Origin, nil
	}
	if body.PostalCode == "" {
		return geo.Point{}, errors.New("either origin coordinates or postalCode is required")
	}
	if s.geocoder == nil {
		return geo.Point{}, errors.New("postalCode lookup is not available; provide origin coordinates")
	}

	p, err := s.geocoder.Geocode(ctx, body.PostalCode)
	if err != nil {
		s.logger.Warn("geocoding failed", zap.String("postal_code", body.PostalCode), zap.Error(err))
		return geo.Point{}, errors.New("could not resolve postal code; provide origin coordinates")
	}
	return p, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// --- Encoding helpers ---

func toSearchResponse(resp pipeline.Response) searchResponseJSON {
	out := searchResponseJSON{
		Stores:   make([]rankedStoreJSON, 0, len(resp.Stores)),
		Advisory: resp.Advisory,
		Degraded: resp.Degraded,
	}
	for _, r := range resp.Stores {
		out.Stores = append(out.Stores, rankedStoreJSON{
			ID:                r.ID,
			Name:              r.Name,
			Address:           r.Address,
			Location:          r.Location,
			DistanceMiles:     r.DistanceMiles,
			DistanceFormatted: geo.FormatMiles(r.DistanceMiles),
			Likelihood:        r.Likelihood,
			Availability:      string(r.Availability),
			Reason:            r.Reason,
			EstimatedPrice:    r.EstimatedPrice,
			Phone:             r.Phone,
			Website:           r.Website,
			Synthetic:         r.Synthetic,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponseJSON{Code: code, Message: message})
}
