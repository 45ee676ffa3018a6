package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the mean radius of Earth used for Haversine distance.
const EarthRadiusMiles = 3959.0

// MetersPerMile converts a mile budget to a provider search radius.
const MetersPerMile = 1609.34

// Point is a latitude/longitude pair in degrees. Always passed by value.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid checks that latitude is in [-90,90] and longitude in [-180,180].
func Valid(p Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceMiles returns the great-circle distance in miles between two points,
// rounded to one decimal place. NaN inputs propagate as NaN; callers validate
// coordinates before calling.
func DistanceMiles(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return RoundMiles(EarthRadiusMiles * c)
}

// RoundMiles rounds a distance to one decimal place.
func RoundMiles(mi float64) float64 {
	return math.Round(mi*10) / 10
}

// FormatMiles renders a distance for display, e.g. "2.4 mi".
func FormatMiles(mi float64) string {
	return fmt.Sprintf("%.1f mi", mi)
}
