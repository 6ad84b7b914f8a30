package travel

import (
	"math"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometres using the haversine
// formula. NaN inputs propagate to the result.
func Distance(a, b models.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180)
	dLng := (b.Lng - a.Lng) * (math.Pi / 180)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*(math.Pi/180))*math.Cos(b.Lat*(math.Pi/180))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// ValidCoordinate checks the WGS-84 ranges. Unlike a zero check, 0,0 is accepted.
func ValidCoordinate(c models.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Bounds is a lat/lng bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MinLng float64 `json:"min_lng" yaml:"min_lng"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MaxLng float64 `json:"max_lng" yaml:"max_lng"`
}

// Contains reports whether c lies inside the box, edges included.
func (b Bounds) Contains(c models.Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// Center returns the midpoint of the box.
func (b Bounds) Center() models.Coordinate {
	return models.Coordinate{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}
}

// BoundsOf returns the smallest box containing every valid coordinate, and
// false when there is none.
func BoundsOf(coords []models.Coordinate) (Bounds, bool) {
	b := Bounds{
		MinLat: math.MaxFloat64,
		MinLng: math.MaxFloat64,
		MaxLat: -math.MaxFloat64,
		MaxLng: -math.MaxFloat64,
	}
	found := false
	for _, c := range coords {
		if !ValidCoordinate(c) {
			continue
		}
		found = true
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
		b.MinLng = math.Min(b.MinLng, c.Lng)
		b.MaxLng = math.Max(b.MaxLng, c.Lng)
	}
	if !found {
		return Bounds{}, false
	}
	return b, true
}
