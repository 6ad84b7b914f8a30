// Package weather serves current conditions and a short forecast for the
// municipality, degrading to a fixed snapshot whenever the provider is unreachable.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

const forecastDays = 5

// Provider fetches a complete snapshot for a position.
type Provider interface {
	Fetch(ctx context.Context, at models.Coordinate) (models.WeatherSnapshot, error)
	Name() string
}

// ConditionFromIcon maps an OpenWeather icon code such as "10d" onto a display
// condition. Unknown codes are sunny.
func ConditionFromIcon(code string) models.Condition {
	if len(code) >= 2 {
		code = code[:2]
	}
	switch code {
	case "01":
		return models.ConditionSunny
	case "02":
		return models.ConditionPartlyCloudy
	case "03", "04", "50":
		return models.ConditionCloudy
	case "09", "10", "11", "13":
		return models.ConditionRainy
	default:
		return models.ConditionSunny
	}
}

type OpenWeatherProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	loc     *time.Location
	now     func() time.Time
}

func NewOpenWeatherProvider(apiKey, baseURL string, loc *time.Location, client *http.Client) (*OpenWeatherProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openweather: %w", models.ErrMissingAPIKey)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &OpenWeatherProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		loc:     loc,
		now:     time.Now,
	}, nil
}

func (p *OpenWeatherProvider) Name() string { return "openweather" }

type owCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owCurrent struct {
	Weather []owCondition `json:"weather"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []owCondition `json:"weather"`
	} `json:"list"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, at models.Coordinate) (models.WeatherSnapshot, error) {
	ctx, span := otel.Tracer("OpenWeatherProvider").Start(ctx, "Fetch")
	defer span.End()

	var current owCurrent
	if err := p.get(ctx, "/data/2.5/weather", at, &current); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "current weather failed")
		return models.WeatherSnapshot{}, err
	}
	var forecast owForecast
	if err := p.get(ctx, "/data/2.5/forecast", at, &forecast); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast failed")
		return models.WeatherSnapshot{}, err
	}

	now := p.now().In(p.loc)
	snap := models.WeatherSnapshot{
		Current: models.CurrentWeather{
			TempC:    math.Round(current.Main.Temp),
			Humidity: current.Main.Humidity,
			WindKmh:  math.Round(current.Wind.Speed * 3.6),
		},
		FetchedAt: now.UTC(),
		Source:    p.Name(),
	}
	if len(current.Weather) > 0 {
		snap.Current.Condition = ConditionFromIcon(current.Weather[0].Icon)
		snap.Current.Description = current.Weather[0].Description
	} else {
		snap.Current.Condition = models.ConditionSunny
	}

	entries := make([]forecastEntry, 0, len(forecast.List))
	for _, item := range forecast.List {
		icon := ""
		if len(item.Weather) > 0 {
			icon = item.Weather[0].Icon
		}
		entries = append(entries, forecastEntry{At: time.Unix(item.Dt, 0), TempC: item.Main.Temp, Icon: icon})
	}
	snap.Forecast = dailyForecast(entries, snap.Current, now)

	span.SetAttributes(attribute.Int("forecast.days", len(snap.Forecast)))
	span.SetStatus(codes.Ok, "Weather fetched")
	return snap, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, at models.Coordinate, out any) error {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: weather request: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", models.ErrUpstream, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", models.ErrUpstream, path, err)
	}
	return nil
}

type forecastEntry struct {
	At    time.Time
	TempC float64
	Icon  string
}

// dailyForecast reduces 3-hourly entries to one entry per local day, taking the
// reading closest to noon. Days start at now's date; when the list has nothing
// left for today, today is taken from current conditions.
func dailyForecast(entries []forecastEntry, current models.CurrentWeather, now time.Time) []models.ForecastDay {
	loc := now.Location()
	today := models.DateOf(now)

	type pick struct {
		date  models.Date
		entry forecastEntry
		dist  time.Duration
	}
	var days []pick
	index := make(map[models.Date]int)

	for _, e := range entries {
		local := e.At.In(loc)
		date := models.DateOf(local)
		if date.Before(today) {
			continue
		}
		noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
		dist := local.Sub(noon).Abs()

		i, ok := index[date]
		if !ok {
			index[date] = len(days)
			days = append(days, pick{date: date, entry: e, dist: dist})
			continue
		}
		if dist < days[i].dist {
			days[i].entry, days[i].dist = e, dist
		}
	}

	out := make([]models.ForecastDay, 0, forecastDays)
	if _, ok := index[today]; !ok {
		out = append(out, models.ForecastDay{Label: "Today", TempC: current.TempC, Condition: current.Condition})
	}
	for _, d := range days {
		if len(out) == forecastDays {
			break
		}
		out = append(out, models.ForecastDay{
			Label:     dayLabel(d.date, today),
			TempC:     math.Round(d.entry.TempC),
			Condition: ConditionFromIcon(d.entry.Icon),
		})
	}
	return out
}

func dayLabel(d, today models.Date) string {
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDays(1)):
		return "Tomorrow"
	default:
		return d.Weekday().String()[:3]
	}
}
