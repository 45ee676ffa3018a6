package partscout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchStores_OK(t *testing.T) {
	var gotAuth string
	var gotReq SearchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/stores/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Stores: []Store{{
				ID:                "p1",
				Name:              "City Hardware",
				DistanceMiles:     1.2,
				DistanceFormatted: "1.2 mi",
				Likelihood:        80,
				Availability:      "possible",
				EstimatedPrice:    PriceEstimate{Amount: 42, Currency: "USD"},
			}},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, WithAPIKey("secret"))
	resp, err := client.SearchStores(context.Background(), SearchRequest{
		Part:             Part{Name: "door gasket", Category: "refrigerator"},
		Origin:           &Point{Lat: 34.0522, Lng: -118.2437},
		MaxDistanceMiles: 5,
	})
	if err != nil {
		t.Fatalf("SearchStores: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("authorization header: got %q", gotAuth)
	}
	if gotReq.Part.Name != "door gasket" {
		t.Errorf("request part name: got %q", gotReq.Part.Name)
	}
	if len(resp.Stores) != 1 || resp.Stores[0].ID != "p1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Stores[0].Availability != "possible" {
		t.Errorf("availability: got %q", resp.Stores[0].Availability)
	}
}

func TestSearchStores_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_input","message":"part name is required"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.SearchStores(context.Background(), SearchRequest{MaxDistanceMiles: 5})
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: got %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", apiErr.Status, http.StatusBadRequest)
	}
	if apiErr.Code != "invalid_input" {
		t.Errorf("code: got %q, want invalid_input", apiErr.Code)
	}
}

func TestSearchStores_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.SearchStores(context.Background(), SearchRequest{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type: got %T, want *APIError", err)
	}
	if apiErr.Code != "unknown" {
		t.Errorf("code: got %q, want unknown", apiErr.Code)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status: got %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
}

func TestSearchStores_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected authorization header: %q", h)
		}
		_ = json.NewEncoder(w).Encode(SearchResponse{Stores: []Store{}})
	}))
	defer srv.Close()

	client := New(srv.URL)
	if _, err := client.SearchStores(context.Background(), SearchRequest{}); err != nil {
		t.Fatalf("SearchStores: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/healthz" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(HealthReport{
			Status: "ok",
			Checks: map[string]string{"cache": "ok"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	report, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if report.Status != "ok" {
		t.Errorf("status: got %q, want ok", report.Status)
	}
	if report.Checks["cache"] != "ok" {
		t.Errorf("cache check: got %q, want ok", report.Checks["cache"])
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("path: got %q, want /healthz", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(HealthReport{Status: "ok"})
	}))
	defer srv.Close()

	client := New(srv.URL + "/")
	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
