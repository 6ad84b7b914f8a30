package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/juanito/internal/app/domain/calendar"
	"github.com/FACorreiaa/juanito/internal/app/models"
)

const cellBase = "h-10 w-10 rounded-full text-sm flex items-center justify-center"

func cellClasses(c *calendar.Cell) string {
	var extra []string
	if c.HasEvent {
		extra = append(extra, "bg-amber-100 font-semibold")
	}
	if c.Today {
		extra = append(extra, "ring-2 ring-sky-400")
	}
	if c.Selected {
		extra = append(extra, "bg-sky-600 text-white")
	}
	return classes(cellBase, extra...)
}

func monthLink(m calendar.Month) string {
	return fmt.Sprintf("/calendar?year=%d&month=%d", m.Year, int(m.Month))
}

// Calendar renders a month grid with the selected day's events below it.
func Calendar(view calendar.MonthView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section id="calendar" class="rounded-lg bg-white p-4 shadow">`,
			`<header class="mb-2 flex items-center justify-between">`)
		w.raw(`<a class="prev" hx-get="`, attr(monthLink(view.Prev)), `" hx-target="#calendar" hx-swap="outerHTML" href="`, attr(monthLink(view.Prev)), `">&lsaquo;</a>`)
		w.raw(`<h2 class="font-semibold">`)
		w.text(view.Label)
		w.raw(`</h2>`)
		w.raw(`<a class="next" hx-get="`, attr(monthLink(view.Next)), `" hx-target="#calendar" hx-swap="outerHTML" href="`, attr(monthLink(view.Next)), `">&rsaquo;</a>`)
		w.raw(`</header><table class="w-full text-center"><thead><tr>`)
		for _, label := range view.Weekdays {
			w.raw(`<th class="text-xs text-slate-500">`)
			w.text(label)
			w.raw(`</th>`)
		}
		w.raw(`</tr></thead><tbody>`)
		for _, row := range view.Rows() {
			w.raw(`<tr>`)
			for _, cell := range row {
				if cell == nil {
					w.raw(`<td class="blank"></td>`)
					continue
				}
				link := fmt.Sprintf("/calendar?selected=%s", cell.Date)
				w.raw(`<td><a class="`, attr(cellClasses(cell)), `" data-date="`, cell.Date.String(), `" hx-get="`, attr(link),
					`" hx-target="#calendar" hx-swap="outerHTML" href="`, attr(link), `">`)
				w.printf("%d", cell.Day)
				w.raw(`</a></td>`)
			}
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table>`)
		if view.Selected != nil {
			w.component(ctx, DayEvents(*view.Selected, view.Events))
		}
		w.raw(`</section>`)
		return w.err
	})
}

// DayEvents lists the events active on one day.
func DayEvents(day models.Date, events []models.Event) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<div id="day-events" class="mt-4"><h3 class="font-medium">`)
		w.text(day.Time().Format("Monday, January 2"))
		w.raw(`</h3>`)
		if len(events) == 0 {
			w.raw(`<p class="empty text-sm text-slate-500">No events on this day.</p></div>`)
			return w.err
		}
		w.raw(`<ul class="space-y-2">`)
		for _, ev := range events {
			w.raw(`<li class="event" data-id="`, attr(ev.ID), `"><span class="font-medium">`)
			w.text(ev.Name)
			w.raw(`</span> <span class="text-xs text-slate-500">`)
			w.text(joinNonEmpty(" · ", ev.Kind, ev.Time, ev.Address))
			w.raw(`</span></li>`)
		}
		w.raw(`</ul></div>`)
		return w.err
	})
}
