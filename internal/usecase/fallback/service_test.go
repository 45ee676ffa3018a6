package fallback

import (
	"testing"

	"github.com/partscout/partscout/internal/domain/geo"
)

var origin = geo.Point{Lat: 34.0522, Lng: -118.2437}

func TestGenerate_CountAndProvenance(t *testing.T) {
	svc := New()

	got := svc.Generate(origin, 5)
	if len(got) < 3 || len(got) > 5 {
		t.Fatalf("expected 3-5 synthetic stores, got %d", len(got))
	}
	for _, c := range got {
		if !c.Synthetic {
			t.Errorf("%s is missing the synthetic marker", c.Name)
		}
		if c.Likelihood < 80 || c.Likelihood > 95 {
			t.Errorf("%s likelihood %d outside the archetype range", c.Name, c.Likelihood)
		}
		if c.Reason == "" {
			t.Errorf("%s has no reason", c.Name)
		}
	}
}

func TestGenerate_HonorsDistanceBudget(t *testing.T) {
	svc := New()
	const epsilon = 0.05

	for _, budget := range []float64{1, 5, 25} {
		for _, c := range svc.Generate(origin, budget) {
			d := geo.DistanceMiles(origin, c.Location)
			if d > budget+epsilon {
				t.Errorf("budget %v: %s at %v mi exceeds bound", budget, c.Name, d)
			}
			if c.DistanceMiles != d {
				t.Errorf("%s distance annotation %v != recomputed %v", c.Name, c.DistanceMiles, d)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	svc := New()

	a := svc.Generate(origin, 5)
	b := svc.Generate(origin, 5)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Location != b[i].Location || a[i].Likelihood != b[i].Likelihood {
			t.Errorf("generation not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_DistinctLocations(t *testing.T) {
	svc := New()

	seen := make(map[geo.Point]struct{})
	for _, c := range svc.Generate(origin, 5) {
		if _, dup := seen[c.Location]; dup {
			t.Errorf("duplicate synthetic location %v", c.Location)
		}
		seen[c.Location] = struct{}{}
	}
}
