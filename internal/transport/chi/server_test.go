package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
	"github.com/partscout/partscout/internal/domain/store"
	healthuc "github.com/partscout/partscout/internal/usecase/health"
	"github.com/partscout/partscout/internal/usecase/pipeline"
	"github.com/partscout/partscout/internal/usecase/rank"
)

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, domain.Part) []store.TypeTag {
	return []store.TypeTag{store.TagHardware}
}

type stubSearcher struct {
	cands []store.Candidate
	err   error
}

func (s stubSearcher) Search(context.Context, geo.Point, []store.TypeTag, float64) ([]store.Candidate, error) {
	return s.cands, s.err
}

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, cands []store.Candidate, _ domain.Part) []store.Candidate {
	out := make([]store.Candidate, len(cands))
	copy(out, cands)
	for i := range out {
		out[i].Likelihood = 80
	}
	return out
}

type stubPricer struct{}

func (stubPricer) Estimate(domain.Part, store.Ranked) store.PriceEstimate {
	return store.PriceEstimate{Amount: 42, Currency: "USD", RangeLow: 33.6, RangeHigh: 50.4}
}

type stubGenerator struct{}

func (stubGenerator) Generate(origin geo.Point, _ float64) []store.Candidate {
	return []store.Candidate{{
		ID: "synthetic-1", Name: "Ace Hardware", Location: origin,
		Likelihood: 84, Operational: true, Synthetic: true,
	}}
}

type stubGeocoder struct {
	point geo.Point
	err   error
	calls int
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (geo.Point, error) {
	g.calls++
	return g.point, g.err
}

var testOrigin = geo.Point{Lat: 34.0522, Lng: -118.2437}

func nearbyCandidate(id string) store.Candidate {
	return store.Candidate{
		ID:          id,
		Name:        "City Hardware",
		Address:     "1 Main St",
		Location:    geo.Point{Lat: 34.0550, Lng: -118.2437},
		Operational: true,
		Phone:       "555-0100",
	}
}

func newTestServer(t *testing.T, searcher stubSearcher, geocoder Geocoder) http.Handler {
	t.Helper()

	pipe := pipeline.New(
		stubClassifier{}, searcher, stubVerifier{}, stubPricer{}, stubGenerator{},
		nil, rank.DefaultParams(),
	)
	srv := NewServer(pipe, healthuc.New(nil, nil), geocoder, zap.NewNop())

	r := gochi.NewRouter()
	srv.Mount(r)
	return r
}

func postSearch(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/v1/stores/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSearchHandler_OK(t *testing.T) {
	h := newTestServer(t, stubSearcher{cands: []store.Candidate{nearbyCandidate("p1")}}, nil)

	rr := postSearch(t, h, `{
		"part": {"name": "door gasket", "category": "refrigerator"},
		"origin": {"lat": 34.0522, "lng": -118.2437},
		"maxDistanceMiles": 5
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp searchResponseJSON
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Stores) != 1 {
		t.Fatalf("stores: got %d, want 1", len(resp.Stores))
	}
	if resp.Degraded {
		t.Error("degraded set on a live-data response")
	}

	got := resp.Stores[0]
	if got.ID != "p1" {
		t.Errorf("id: got %q, want p1", got.ID)
	}
	if got.Availability != "possible" {
		t.Errorf("availability: got %q, want possible", got.Availability)
	}
	if got.DistanceFormatted != geo.FormatMiles(got.DistanceMiles) {
		t.Errorf("distanceFormatted: got %q for %.1f miles", got.DistanceFormatted, got.DistanceMiles)
	}
	if got.EstimatedPrice.Currency != "USD" {
		t.Errorf("price currency: got %q", got.EstimatedPrice.Currency)
	}
}

func TestSearchHandler_DegradedOnSearcherFailure(t *testing.T) {
	h := newTestServer(t, stubSearcher{err: domain.ErrUpstreamUnavailable}, nil)

	rr := postSearch(t, h, `{
		"part": {"name": "door gasket"},
		"origin": {"lat": 34.0522, "lng": -118.2437},
		"maxDistanceMiles": 5
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	var resp searchResponseJSON
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Degraded {
		t.Error("degraded not set on a fallback response")
	}
	for _, st := range resp.Stores {
		if !st.Synthetic {
			t.Errorf("store %s not marked synthetic on a degraded response", st.ID)
		}
	}
}

func TestSearchHandler_MalformedBody_400(t *testing.T) {
	h := newTestServer(t, stubSearcher{}, nil)

	rr := postSearch(t, h, `{"part": `)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var errResp errorResponseJSON
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != "invalid_input" {
		t.Errorf("error code: got %q, want invalid_input", errResp.Code)
	}
}

func TestSearchHandler_MissingOrigin_400(t *testing.T) {
	h := newTestServer(t, stubSearcher{}, nil)

	rr := postSearch(t, h, `{"part": {"name": "door gasket"}, "maxDistanceMiles": 5}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSearchHandler_EmptyPartName_400(t *testing.T) {
	h := newTestServer(t, stubSearcher{}, nil)

	rr := postSearch(t, h, `{
		"part": {"name": ""},
		"origin": {"lat": 34.0522, "lng": -118.2437},
		"maxDistanceMiles": 5
	}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSearchHandler_PostalCodeGeocoded(t *testing.T) {
	gc := &stubGeocoder{point: testOrigin}
	h := newTestServer(t, stubSearcher{cands: []store.Candidate{nearbyCandidate("p1")}}, gc)

	rr := postSearch(t, h, `{
		"part": {"name": "door gasket"},
		"postalCode": "90012",
		"maxDistanceMiles": 5
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	if gc.calls != 1 {
		t.Errorf("geocoder calls: got %d, want 1", gc.calls)
	}
}

func TestSearchHandler_GeocodeFailure_400(t *testing.T) {
	gc := &stubGeocoder{err: errors.New("upstream down")}
	h := newTestServer(t, stubSearcher{}, gc)

	rr := postSearch(t, h, `{
		"part": {"name": "door gasket"},
		"postalCode": "00000",
		"maxDistanceMiles": 5
	}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSearchHandler_PostalCodeWithoutGeocoder_400(t *testing.T) {
	h := newTestServer(t, stubSearcher{}, nil)

	rr := postSearch(t, h, `{
		"part": {"name": "door gasket"},
		"postalCode": "90012",
		"maxDistanceMiles": 5
	}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHealthHandler(t *testing.T) {
	h := newTestServer(t, stubSearcher{}, nil)

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status: got %q, want ok", body.Status)
	}
}
