package domain

import "errors"

var (
	// ErrInvalidInput signals a rejected request (bad coordinates, empty part, non-positive budget).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable signals an unreachable or failing oracle/search provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedResponse signals unparseable JSON from an oracle response.
	ErrMalformedResponse = errors.New("malformed oracle response")
	// ErrEmptyResult signals that no candidate survived filtering.
	ErrEmptyResult = errors.New("no stores found")
)
