// Package search defines the validated search request.
package search

import (
	"fmt"
	"strings"

	"github.com/partscout/partscout/internal/domain"
	"github.com/partscout/partscout/internal/domain/geo"
)

// Request limits.
const (
	DefaultResultCap = 5
	MaxResultCap     = 10
)

// Request is a validated store search. Constructed once per search; immutable.
type Request struct {
	part     domain.Part
	origin   geo.Point
	maxMiles float64
	cap      int
}

// NewRequest validates and normalizes search parameters.
// The result cap defaults to 5 and is clamped to 10.
func NewRequest(part domain.Part, origin geo.Point, maxDistanceMiles float64, resultCap int) (Request, error) {
	if strings.TrimSpace(part.Name) == "" {
		return Request{}, fmt.Errorf("%w: part name is required", domain.ErrInvalidInput)
	}
	if !geo.Valid(origin) {
		return Request{}, fmt.Errorf("%w: coordinates out of range (lat=%v lng=%v)",
			domain.ErrInvalidInput, origin.Lat, origin.Lng)
	}
	if maxDistanceMiles <= 0 {
		return Request{}, fmt.Errorf("%w: max distance must be positive, got %v",
			domain.ErrInvalidInput, maxDistanceMiles)
	}
	if resultCap <= 0 {
		resultCap = DefaultResultCap
	}
	if resultCap > MaxResultCap {
		resultCap = MaxResultCap
	}

	return Request{
		part:     part,
		origin:   origin,
		maxMiles: maxDistanceMiles,
		cap:      resultCap,
	}, nil
}

// Part returns the product being searched for.
func (r *Request) Part() domain.Part { return r.part }

// Origin returns the user location.
func (r *Request) Origin() geo.Point { return r.origin }

// MaxDistanceMiles returns the hard distance budget.
func (r *Request) MaxDistanceMiles() float64 { return r.maxMiles }

// ResultCap returns the maximum results to return.
func (r *Request) ResultCap() int { return r.cap }
