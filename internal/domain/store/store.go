// Package store defines the candidate-store types flowing through the
// discovery pipeline.
package store

import "github.com/partscout/partscout/internal/domain/geo"

// TypeTag is a retail-category tag drawn from a fixed closed set. A classifier
// must never emit a tag outside this set; unknown tags are discarded before use.
type TypeTag string

const (
	TagHardware    TypeTag = "hardware_store"
	TagHomeGoods   TypeTag = "home_goods_store"
	TagElectronics TypeTag = "electronics_store"
	TagGeneric     TypeTag = "generic_store"
)

// ParseTag validates a raw tag string against the closed set.
func ParseTag(s string) (TypeTag, bool) {
	switch TypeTag(s) {
	case TagHardware, TagHomeGoods, TagElectronics, TagGeneric:
		return TypeTag(s), true
	}
	return "", false
}

// AllTags returns the full closed tag set, used as the classifier fallback
// to maximize candidate recall when classification is impossible.
func AllTags() []TypeTag {
	return []TypeTag{TagHardware, TagHomeGoods, TagElectronics, TagGeneric}
}

// MatchTags maps raw provider category strings onto the closed tag set,
// dropping anything unrecognized.
func MatchTags(types []string) []TypeTag {
	var tags []TypeTag
	seen := make(map[TypeTag]struct{}, 4)
	for _, t := range types {
		tag, ok := ParseTag(t)
		if !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Candidate is a raw search result annotated progressively by pipeline stages.
// Discarded candidates are never persisted; the pipeline is stateless per request.
type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Location    geo.Point `json:"location"`
	Types       []string  `json:"types,omitempty"` // raw provider categories
	Tags        []TypeTag `json:"tags,omitempty"`  // matched closed-set tags
	Rating      float64   `json:"rating,omitempty"`
	RatingCount int       `json:"ratingCount,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Website     string    `json:"website,omitempty"`
	Operational bool      `json:"operational"`

	DistanceMiles float64 `json:"distanceMiles"`
	Likelihood    int     `json:"likelihood"`
	Reason        string  `json:"reason,omitempty"`

	// Synthetic marks fallback-generated profiles that do not represent
	// verified real businesses.
	Synthetic bool `json:"synthetic"`
}

// AvailabilityLabel buckets a likelihood score for presentation.
type AvailabilityLabel string

const (
	Likely        AvailabilityLabel = "likely"
	Possible      AvailabilityLabel = "possible"
	CallToConfirm AvailabilityLabel = "call_to_confirm"
	Unlikely      AvailabilityLabel = "unlikely"
)

// LabelFor derives the availability label from a likelihood score.
func LabelFor(likelihood int) AvailabilityLabel {
	switch {
	case likelihood >= 85:
		return Likely
	case likelihood >= 70:
		return Possible
	case likelihood >= 60:
		return CallToConfirm
	default:
		return Unlikely
	}
}

// PriceEstimate is a derived point estimate plus a display range.
// Availability is probabilistic; so is price.
type PriceEstimate struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	RangeLow  float64 `json:"rangeLow"`
	RangeHigh float64 `json:"rangeHigh"`
}

// Ranked is a candidate that survived filtering, with its final derived fields.
// Never mutated after construction.
type Ranked struct {
	Candidate
	Availability   AvailabilityLabel `json:"availability"`
	EstimatedPrice PriceEstimate     `json:"estimatedPrice"`
	RelevanceScore float64           `json:"relevanceScore"`
}
