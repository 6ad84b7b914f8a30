// Package calendar decides which events fall on a day and lays out month
// grids for the events calendar.
package calendar

import "github.com/FACorreiaa/juanito/internal/app/models"

// IsActive reports whether ev is on day: its start date, any day of its
// [start, end] span, or, for weekly events, any day sharing the start weekday.
// Weekly recurrence is not bounded by the start date. An end before the start
// makes the span empty but leaves the start date itself active.
func IsActive(ev models.Event, day models.Date) bool {
	if ev.Start.Equal(day) {
		return true
	}
	if ev.End != nil && !day.Before(ev.Start) && !day.After(*ev.End) {
		return true
	}
	return ev.Weekly && day.Weekday() == ev.Start.Weekday()
}

// ActiveEvents returns the events on day in declaration order.
func ActiveEvents(events []models.Event, day models.Date) []models.Event {
	out := make([]models.Event, 0)
	for _, ev := range events {
		if IsActive(ev, day) {
			out = append(out, ev)
		}
	}
	return out
}

// HasEvents is ActiveEvents without the allocation.
func HasEvents(events []models.Event, day models.Date) bool {
	for _, ev := range events {
		if IsActive(ev, day) {
			return true
		}
	}
	return false
}
