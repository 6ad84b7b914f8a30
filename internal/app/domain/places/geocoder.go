package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/pkg/travel"
)

// Feature is one geocoding hit before classification.
type Feature struct {
	ID       string
	Name     string
	Address  string
	Hints    []string
	Position models.Coordinate
}

// Geocoder looks up points of interest for a keyword inside a bounding box.
type Geocoder interface {
	Search(ctx context.Context, keyword string, bounds travel.Bounds) ([]Feature, error)
	Name() string
}

const mapboxResultLimit = 10

type MapboxGeocoder struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewMapboxGeocoder(token, baseURL string, client *http.Client) (*MapboxGeocoder, error) {
	if token == "" {
		return nil, fmt.Errorf("mapbox: %w", models.ErrMissingAPIKey)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &MapboxGeocoder{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}, nil
}

func (g *MapboxGeocoder) Name() string { return "mapbox" }

type mapboxResponse struct {
	Features []struct {
		ID         string    `json:"id"`
		Text       string    `json:"text"`
		PlaceName  string    `json:"place_name"`
		Center     []float64 `json:"center"`
		Properties struct {
			Category string `json:"category"`
			Address  string `json:"address"`
		} `json:"properties"`
	} `json:"features"`
}

func (g *MapboxGeocoder) Search(ctx context.Context, keyword string, bounds travel.Bounds) ([]Feature, error) {
	ctx, span := otel.Tracer("MapboxGeocoder").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("keyword", keyword),
	))
	defer span.End()

	params := url.Values{}
	params.Set("access_token", g.token)
	params.Set("bbox", bbox(bounds))
	params.Set("types", "poi")
	params.Set("limit", strconv.Itoa(mapboxResultLimit))
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s", g.baseURL, url.PathEscape(keyword), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("%w: geocoding request: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("%w: geocoding returned %s", models.ErrUpstream, resp.Status)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: decode geocoding response: %v", models.ErrUpstream, err)
	}

	out := make([]Feature, 0, len(body.Features))
	for _, f := range body.Features {
		if f.ID == "" || len(f.Center) < 2 {
			continue
		}
		address := f.PlaceName
		if address == "" {
			address = f.Properties.Address
		}
		out = append(out, Feature{
			ID:       "mapbox:" + f.ID,
			Name:     f.Text,
			Address:  address,
			Hints:    []string{f.Properties.Category, keyword},
			Position: models.Coordinate{Lat: f.Center[1], Lng: f.Center[0]},
		})
	}
	span.SetAttributes(attribute.Int("features.count", len(out)))
	span.SetStatus(codes.Ok, "Geocoded")
	return out, nil
}

// bbox renders bounds as minLng,minLat,maxLng,maxLat.
func bbox(b travel.Bounds) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return strings.Join([]string{f(b.MinLng), f(b.MinLat), f(b.MaxLng), f(b.MaxLat)}, ",")
}
