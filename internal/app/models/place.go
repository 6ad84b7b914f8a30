package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the coarse POI classification used for map filters and markers.
type Category string

const (
	CategoryBeach         Category = "beach"
	CategoryHotel         Category = "hotel"
	CategoryRestaurant    Category = "restaurant"
	CategoryAttraction    Category = "attraction"
	CategoryEstablishment Category = "establishment"
)

// Categories lists the fixed category set in filter order.
var Categories = []Category{
	CategoryBeach,
	CategoryHotel,
	CategoryRestaurant,
	CategoryAttraction,
	CategoryEstablishment,
}

var titleCaser = cases.Title(language.English)

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label is the display name shown on map filter buttons.
func (c Category) Label() string {
	return titleCaser.String(string(c))
}

// Occupancy is a display-only crowding indicator.
type Occupancy string

const (
	OccupancyLow    Occupancy = "low"
	OccupancyMedium Occupancy = "medium"
	OccupancyHigh   Occupancy = "high"
)

// Coordinate is a WGS-84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Place is a point of interest shown on the map.
type Place struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Category    Category  `json:"category" yaml:"category"`
	Lat         float64   `json:"lat" yaml:"lat"`
	Lng         float64   `json:"lng" yaml:"lng"`
	Occupancy   Occupancy `json:"occupancy,omitempty" yaml:"occupancy,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Rating      float64   `json:"rating,omitempty" yaml:"rating,omitempty"`
	Address     string    `json:"address,omitempty" yaml:"address,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"-"`
}

// Coordinate returns the place position.
func (p Place) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// Product is a local product promoted in the sidebar.
type Product struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// BeachRule is one entry of the beach-rules popup.
type BeachRule struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}
