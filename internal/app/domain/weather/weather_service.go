package weather

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/app/observability/metrics"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultStaleAfter = time.Hour
)

// Service keeps the last good snapshot. Readers never wait on the provider.
type Service struct {
	provider   Provider
	fallback   models.WeatherSnapshot
	position   models.Coordinate
	timeout    time.Duration
	staleAfter time.Duration

	mu    sync.RWMutex
	last  *models.WeatherSnapshot
	group singleflight.Group

	logger *zap.Logger
	now    func() time.Time
}

// NewService builds the weather service. provider may be nil, in which case
// the fallback snapshot is always served.
func NewService(provider Provider, fallback models.WeatherSnapshot, position models.Coordinate,
	timeout, staleAfter time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Service{
		provider:   provider,
		fallback:   fallback,
		position:   position,
		timeout:    timeout,
		staleAfter: staleAfter,
		logger:     logger.Named("weather"),
		now:        time.Now,
	}
}

// Current returns the last fetched snapshot, or the fallback when nothing was
// fetched yet. Stale is set when the data is not fresh.
func (s *Service) Current() models.WeatherSnapshot {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		snap := clone(s.fallback)
		snap.Source = "fallback"
		snap.Stale = true
		return snap
	}
	snap := clone(*last)
	snap.Stale = s.now().Sub(snap.FetchedAt) > s.staleAfter
	return snap
}

// Refresh fetches a new snapshot. Concurrent calls share one request. On
// failure the previous snapshot is kept and returned together with the error.
func (s *Service) Refresh(ctx context.Context) (models.WeatherSnapshot, error) {
	if s.provider == nil {
		return s.Current(), models.ErrMissingAPIKey
	}

	_, err, _ := s.group.Do("refresh", func() (any, error) {
		ctx, span := otel.Tracer("WeatherService").Start(context.WithoutCancel(ctx), "Refresh")
		defer span.End()

		fctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		start := time.Now()
		snap, err := s.provider.Fetch(fctx, s.position)
		elapsed := time.Since(start).Seconds()
		if err != nil {
			metrics.Get().Upstream(ctx, s.provider.Name(), "error", elapsed)
			span.RecordError(err)
			span.SetStatus(codes.Error, "refresh failed")
			return nil, fmt.Errorf("weather refresh: %w", err)
		}
		metrics.Get().Upstream(ctx, s.provider.Name(), "ok", elapsed)

		s.mu.Lock()
		s.last = &snap
		s.mu.Unlock()
		span.SetStatus(codes.Ok, "Weather refreshed")
		return nil, nil
	})
	if err != nil {
		s.logger.Warn("Weather refresh failed, keeping last known data", zap.Error(err))
	}
	return s.Current(), err
}

func clone(snap models.WeatherSnapshot) models.WeatherSnapshot {
	snap.Forecast = slices.Clone(snap.Forecast)
	return snap
}
