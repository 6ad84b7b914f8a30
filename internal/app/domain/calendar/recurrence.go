package calendar

import (
	"sort"

	"github.com/teambition/rrule-go"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// NextOccurrence returns the first day on or after from on which ev is active.
func NextOccurrence(ev models.Event, from models.Date) (models.Date, bool) {
	var (
		best  models.Date
		found bool
	)
	consider := func(d models.Date) {
		if !found || d.Before(best) {
			best, found = d, true
		}
	}

	if !from.After(ev.Start) {
		consider(ev.Start)
	}
	if ev.End != nil && !from.Before(ev.Start) && !from.After(*ev.End) {
		consider(from)
	}
	if ev.Weekly {
		if d, ok := nextWeekly(ev.Start, from); ok {
			consider(d)
		}
	}
	return best, found
}

// nextWeekly anchors the weekly rule at or before from, so that days before the
// start date recur as well.
func nextWeekly(start, from models.Date) (models.Date, bool) {
	anchor := start
	if anchor.After(from) {
		days := int(anchor.Time().Sub(from.Time()).Hours() / 24)
		anchor = anchor.AddDays(-7 * ((days + 6) / 7))
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: anchor.Time(),
	})
	if err != nil {
		return models.Date{}, false
	}
	next := r.After(from.Time(), true)
	if next.IsZero() {
		return models.Date{}, false
	}
	return models.DateOf(next), true
}

// Occurrence pairs an event with a day it is active on.
type Occurrence struct {
	Date  models.Date  `json:"date"`
	Event models.Event `json:"event"`
}

// Upcoming lists the next occurrence of every event still ahead of from,
// soonest first; ties keep declaration order. A limit of 0 means no limit.
func Upcoming(events []models.Event, from models.Date, limit int) []Occurrence {
	out := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		if d, ok := NextOccurrence(ev, from); ok {
			out = append(out, Occurrence{Date: d, Event: ev})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
