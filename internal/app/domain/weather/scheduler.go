package weather

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler refreshes the weather on a cron schedule until stopped.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
}

// NewScheduler validates spec, e.g. "@every 30m".
func NewScheduler(service *Service, spec string, logger *zap.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:    cron.New(),
		service: service,
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger.Named("weather_scheduler"),
	}
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid weather refresh schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs one refresh immediately and then follows the schedule.
func (s *Scheduler) Start() {
	go s.refresh()
	s.cron.Start()
	s.logger.Info("Weather refresh scheduled", zap.Int("entries", len(s.cron.Entries())))
}

// Stop cancels the schedule and waits for a running refresh to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("Weather refresh stopped")
}

func (s *Scheduler) refresh() {
	if s.ctx.Err() != nil {
		return
	}
	snap, err := s.service.Refresh(s.ctx)
	if err != nil {
		return
	}
	s.logger.Debug("Weather refreshed",
		zap.Float64("temp", snap.Current.TempC),
		zap.String("condition", string(snap.Current.Condition)))
}
