package places

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/app/observability/metrics"
	"github.com/FACorreiaa/juanito/internal/app/streaming"
	"github.com/FACorreiaa/juanito/internal/pkg/cache"
	"github.com/FACorreiaa/juanito/internal/pkg/travel"
)

// LocationUnavailable is shown when directions are requested without an origin.
const LocationUnavailable = "Your location is unavailable. Allow location access to see the route and travel time."

// PlaceSelected is broadcast when a place is picked on the map or in the sidebar.
type PlaceSelected struct {
	Place      models.Place `json:"place"`
	SelectedAt time.Time    `json:"selected_at"`
}

// Directions is the straight-line route from the visitor to a place.
type Directions struct {
	Place  models.Place       `json:"place"`
	Origin *models.Coordinate `json:"origin,omitempty"`
	Route  *travel.Estimate   `json:"route,omitempty"`
	Notice string             `json:"notice,omitempty"`
}

type Service struct {
	catalog    *catalog.Catalog
	geocoder   Geocoder
	classifier *Classifier
	cache      *gocache.Cache
	group      singleflight.Group
	timeout    time.Duration
	bus        *streaming.Bus[PlaceSelected]
	logger     *zap.Logger
	now        func() time.Time
}

// NewService builds the map service. geocoder may be nil, in which case only
// the catalog places are served.
func NewService(cat *catalog.Catalog, geocoder Geocoder, bus *streaming.Bus[PlaceSelected],
	cacheTTL, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		catalog:    cat,
		geocoder:   geocoder,
		classifier: NewClassifier(cat.POI.Classification),
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		timeout:    timeout,
		bus:        bus,
		logger:     logger.Named("places"),
		now:        time.Now,
	}
}

// Places returns the catalog places merged with fresh geocoding results,
// filtered by category. Geocoding failures only degrade the result.
func (s *Service) Places(ctx context.Context, category models.Category) ([]models.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Places", trace.WithAttributes(
		attribute.String("category", string(category)),
	))
	defer span.End()

	fresh, err := s.fetch(ctx)
	if err != nil && !errors.Is(err, models.ErrMissingAPIKey) {
		s.logger.Warn("Geocoding failed, serving fallback places", zap.Error(err))
		span.RecordError(err)
	}

	merged := Merge(s.catalog.Places, fresh)
	out := Filter(merged, category)
	span.SetAttributes(attribute.Int("places.count", len(out)), attribute.Int("places.fresh", len(fresh)))
	span.SetStatus(codes.Ok, "Places listed")
	return out, nil
}

// fetch geocodes every search keyword once per cache period. Concurrent
// callers share one in-flight fetch.
func (s *Service) fetch(ctx context.Context) ([]models.Place, error) {
	if s.geocoder == nil {
		return nil, models.ErrMissingAPIKey
	}

	key, err := cache.NewKeyBuilder().
		Add("provider", s.geocoder.Name()).
		Add("keywords", s.catalog.POI.SearchKeywords).
		Add("bounds", s.catalog.Area.Bounds).
		Build()
	if err != nil {
		return nil, err
	}
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]models.Place), nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		start := time.Now()
		found, failed, err := s.geocode(fctx)
		outcome := "ok"
		switch {
		case err != nil:
			outcome = "error"
		case failed > 0:
			outcome = "partial"
		}
		metrics.Get().Upstream(ctx, s.geocoder.Name(), outcome, time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		// Partial results are served but not cached, so the next request retries.
		if failed == 0 {
			s.cache.SetDefault(key, found)
		} else {
			s.logger.Warn("Some geocoding lookups failed, result not cached", zap.Int("failed", failed))
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight geocoding fetch")
	}
	return v.([]models.Place), nil
}

func (s *Service) geocode(ctx context.Context) ([]models.Place, int, error) {
	bounds := s.catalog.Area.Bounds
	var (
		found   []models.Place
		lastErr error
		failed  int
	)
	for _, keyword := range s.catalog.POI.SearchKeywords {
		features, err := s.geocoder.Search(ctx, keyword, bounds)
		if err != nil {
			failed++
			lastErr = err
			s.logger.Debug("Keyword lookup failed", zap.String("keyword", keyword), zap.Error(err))
			continue
		}
		for _, f := range features {
			if !bounds.Contains(f.Position) {
				continue
			}
			found = append(found, models.Place{
				ID:       f.ID,
				Name:     f.Name,
				Category: s.classifier.Classify(f.Name, f.Hints...),
				Lat:      f.Position.Lat,
				Lng:      f.Position.Lng,
				Address:  f.Address,
				Source:   s.geocoder.Name(),
			})
		}
	}
	if failed > 0 && failed == len(s.catalog.POI.SearchKeywords) {
		return nil, failed, fmt.Errorf("all geocoding lookups failed: %w", lastErr)
	}
	return Merge(found), failed, nil
}

// Get finds a place or an event by ID.
func (s *Service) Get(ctx context.Context, id string) (models.Place, error) {
	all, err := s.Places(ctx, CategoryAll)
	if err != nil {
		return models.Place{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	if ev, ok := s.catalog.Event(id); ok {
		return ev.Place, nil
	}
	return models.Place{}, fmt.Errorf("%w: place %q", models.ErrNotFound, id)
}

// Directions estimates the trip from origin. A nil origin yields the place
// with a notice and no route.
func (s *Service) Directions(ctx context.Context, id string, origin *models.Coordinate) (Directions, error) {
	place, err := s.Get(ctx, id)
	if err != nil {
		return Directions{}, err
	}
	if origin == nil {
		return Directions{Place: place, Notice: LocationUnavailable}, nil
	}
	if !travel.ValidCoordinate(*origin) {
		return Directions{}, fmt.Errorf("%w: origin out of range", models.ErrBadRequest)
	}
	est := travel.EstimateTrip(*origin, place.Coordinate())
	return Directions{Place: place, Origin: origin, Route: &est}, nil
}

// Select broadcasts the place to every selection listener.
func (s *Service) Select(ctx context.Context, id string) (PlaceSelected, int, error) {
	place, err := s.Get(ctx, id)
	if err != nil {
		return PlaceSelected{}, 0, err
	}
	ev := PlaceSelected{Place: place, SelectedAt: s.now().UTC()}
	delivered := s.bus.Publish(ev)
	metrics.Get().PlacesSelectedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", string(place.Category)),
	))
	s.logger.Debug("Place selected", zap.String("id", id), zap.Int("listeners", delivered))
	return ev, delivered, nil
}

// Selections opens a subscription to place selections.
func (s *Service) Selections() *streaming.Subscription[PlaceSelected] {
	return s.bus.Subscribe()
}

func (s *Service) CloseSelections(sub *streaming.Subscription[PlaceSelected]) {
	s.bus.Unsubscribe(sub)
}

// Search filters the catalog by free text.
func (s *Service) Search(query string) catalog.SearchResult {
	return s.catalog.Search(query)
}
