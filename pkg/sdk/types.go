package partscout

// Part identifies the appliance part being sought.
type Part struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`
}

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchRequest describes a store search. Either Origin or PostalCode must
// be set; Origin wins when both are present.
type SearchRequest struct {
	Part             Part    `json:"part"`
	Origin           *Point  `json:"origin,omitempty"`
	PostalCode       string  `json:"postalCode,omitempty"`
	MaxDistanceMiles float64 `json:"maxDistanceMiles"`
	// ResultCap limits the number of stores returned. Zero means the
	// server default.
	ResultCap int `json:"resultCap,omitempty"`
}

// PriceEstimate is a heuristic price band, not a quote.
type PriceEstimate struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	RangeLow  float64 `json:"rangeLow"`
	RangeHigh float64 `json:"rangeHigh"`
}

// Store is one ranked result. Likelihood is a 0-100 confidence that the
// store stocks the part; Availability buckets it for presentation.
type Store struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Address           string        `json:"address,omitempty"`
	Location          Point         `json:"location"`
	DistanceMiles     float64       `json:"distanceMiles"`
	DistanceFormatted string        `json:"distanceFormatted"`
	Likelihood        int           `json:"likelihood"`
	Availability      string        `json:"availability"`
	Reason            string        `json:"reason,omitempty"`
	EstimatedPrice    PriceEstimate `json:"estimatedPrice"`
	Phone             string        `json:"phone,omitempty"`
	Website           string        `json:"website,omitempty"`
	// Synthetic marks a generated store profile served while live data
	// sources were unavailable.
	Synthetic bool `json:"synthetic"`
}

// SearchResponse is the ranked result set. Stores is ordered best-first.
type SearchResponse struct {
	Stores   []Store `json:"stores"`
	Advisory string  `json:"advisory,omitempty"`
	Degraded bool    `json:"degraded"`
}

// HealthReport is the service health summary.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
