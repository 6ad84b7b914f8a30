package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

var byDay = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// ICS renders the events as an iCalendar feed of all-day VEVENTs. Weekly
// events carry an RRULE on their start weekday.
func ICS(name string, events []models.Event, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Juanito//San Juan Batangas Events//EN")
	cal.SetXWRCalName(name)

	for _, ev := range events {
		vevent := cal.AddEvent(ev.ID + "@juanito")
		vevent.SetDtStampTime(stamp.UTC())
		vevent.SetSummary(ev.Name)
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
		if ev.Address != "" {
			vevent.SetLocation(ev.Address)
		}
		if ev.Kind != "" {
			vevent.SetProperty(ical.ComponentPropertyCategories, ev.Kind)
		}

		vevent.SetAllDayStartAt(ev.Start.Time())
		end := ev.Start
		if ev.End != nil && ev.End.After(ev.Start) {
			end = *ev.End
		}
		// DTEND of an all-day event is exclusive.
		vevent.SetAllDayEndAt(end.AddDays(1).Time())

		if ev.Weekly {
			vevent.AddRrule("FREQ=WEEKLY;BYDAY=" + byDay[ev.Start.Weekday()])
		}
	}
	return cal.Serialize()
}
