package models

import "time"

// Condition is the display category a provider icon code is mapped onto.
type Condition string

const (
	ConditionSunny        Condition = "sunny"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRainy        Condition = "rainy"
)

type CurrentWeather struct {
	TempC       float64   `json:"temp" yaml:"temp"`
	Condition   Condition `json:"condition" yaml:"condition"`
	Humidity    int       `json:"humidity" yaml:"humidity"`
	WindKmh     float64   `json:"wind" yaml:"wind"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

type ForecastDay struct {
	Label     string    `json:"day" yaml:"day"`
	TempC     float64   `json:"temp" yaml:"temp"`
	Condition Condition `json:"condition" yaml:"condition"`
}

// WeatherSnapshot is replaced wholesale on every refresh; no history is kept.
type WeatherSnapshot struct {
	Current   CurrentWeather `json:"current" yaml:"current"`
	Forecast  []ForecastDay  `json:"forecast" yaml:"forecast"`
	FetchedAt time.Time      `json:"fetched_at" yaml:"-"`
	Source    string         `json:"source" yaml:"-"`
	Stale     bool           `json:"stale" yaml:"-"`
}
