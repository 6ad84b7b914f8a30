package calendar

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/app/observability/metrics"
)

// MonthView is a grid plus the events of the selected day.
type MonthView struct {
	Grid
	Selected *models.Date   `json:"selected,omitempty"`
	Events   []models.Event `json:"events"`
}

type Service struct {
	events  []models.Event
	calName string
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(calName string, events []models.Event, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		events:  events,
		calName: calName,
		loc:     loc,
		now:     time.Now,
		logger:  logger,
	}
}

// Today is the current date in the configured timezone.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now().In(s.loc))
}

// Month renders m. A selected day outside m is still answered but not marked.
func (s *Service) Month(ctx context.Context, m Month, selected *models.Date) MonthView {
	metrics.Get().CalendarQueriesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "month")))

	view := NewView(m, s.events)
	out := MonthView{Events: []models.Event{}}
	if selected != nil {
		out.Events = view.Select(*selected)
		d := *selected
		out.Selected = &d
	}
	out.Grid = view.Grid(s.Today())
	return out
}

// Day lists the events active on d in declaration order.
func (s *Service) Day(ctx context.Context, d models.Date) []models.Event {
	metrics.Get().CalendarQueriesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "day")))
	return ActiveEvents(s.events, d)
}

func (s *Service) Events() []models.Event {
	return s.events
}

// Upcoming lists the next occurrences from today.
func (s *Service) Upcoming(limit int) []Occurrence {
	return Upcoming(s.events, s.Today(), limit)
}

func (s *Service) ICS() string {
	return ICS(s.calName, s.events, s.now())
}
