package travel

import (
	"fmt"
	"math"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// AverageSpeedKmh is the constant speed travel times are estimated at.
const AverageSpeedKmh = 40

// FormatTravelTime renders the driving time for a distance in kilometres.
func FormatTravelTime(km float64) string {
	minutes := km / AverageSpeedKmh * 60

	if minutes < 1 {
		return "Less than a minute"
	}

	if minutes < 60 {
		m := int(math.Round(minutes))
		return fmt.Sprintf("%d %s", m, plural(m, "minute"))
	}

	hours := int(math.Floor(minutes / 60))
	rest := int(math.Round(math.Mod(minutes, 60)))

	out := fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	if rest > 0 {
		out += fmt.Sprintf(" %d %s", rest, plural(rest, "minute"))
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// Estimate is a distance with its formatted travel time.
type Estimate struct {
	DistanceKm float64 `json:"distance_km"`
	Duration   string  `json:"duration"`
}

// EstimateTrip combines Distance and FormatTravelTime.
func EstimateTrip(from, to models.Coordinate) Estimate {
	km := Distance(from, to)
	return Estimate{DistanceKm: km, Duration: FormatTravelTime(km)}
}
