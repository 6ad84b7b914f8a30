package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// HomeData feeds the landing page.
type HomeData struct {
	Places      []models.Place
	Products    []models.Product
	Weather     models.WeatherSnapshot
	LocalTime   string
	Greeting    string
	Suggestions []string
}

var categoryBadge = map[models.Category]string{
	models.CategoryBeach:      "bg-sky-100 text-sky-800",
	models.CategoryHotel:      "bg-violet-100 text-violet-800",
	models.CategoryRestaurant: "bg-orange-100 text-orange-800",
	models.CategoryAttraction: "bg-emerald-100 text-emerald-800",
}

func badgeClasses(c models.Category) string {
	return classes("rounded px-2 py-0.5 text-xs bg-slate-100 text-slate-700", categoryBadge[c])
}

// Home renders the map sidebar: places, weather, products and the chat starter.
func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<div class="grid gap-6 md:grid-cols-3">`)

		w.raw(`<section id="places" class="md:col-span-2"><h2 class="mb-2 text-lg font-semibold">Places</h2>`,
			`<div class="mb-3 flex gap-2"><button hx-get="/api/places" class="filter">All</button>`)
		for _, c := range models.Categories {
			w.raw(`<button class="filter" hx-get="/api/places?category=`, attr(string(c)), `">`)
			w.text(c.Label())
			w.raw(`</button>`)
		}
		w.raw(`</div><ul class="space-y-2">`)
		for _, p := range data.Places {
			w.raw(`<li class="place rounded bg-white p-3 shadow-sm" data-id="`, attr(p.ID), `">`,
				`<span class="`, attr(badgeClasses(p.Category)), `">`)
			w.text(p.Category.Label())
			w.raw(`</span> <span class="font-medium">`)
			w.text(p.Name)
			w.raw(`</span>`)
			if p.Rating > 0 {
				w.printf(` <span class="rating text-xs">%.1f</span>`, p.Rating)
			}
			w.raw(` <button class="select text-xs text-sky-700" hx-post="/api/places/`, attr(p.ID), `/select" hx-swap="none">Show on map</button></li>`)
		}
		w.raw(`</ul></section>`)

		w.raw(`<aside class="space-y-6">`)
		w.component(ctx, WeatherCard(data.Weather, data.LocalTime))
		w.raw(`<section id="chat-starter" class="rounded-lg bg-white p-4 shadow"><p class="greeting mb-2">`)
		w.text(data.Greeting)
		w.raw(`</p><ul class="space-y-1">`)
		for _, s := range data.Suggestions {
			w.raw(`<li class="suggestion text-sm text-sky-700">`)
			w.text(s)
			w.raw(`</li>`)
		}
		w.raw(`</ul></section><section><h2 class="mb-2 text-lg font-semibold">Local Products</h2>`)
		w.component(ctx, Products(data.Products))
		w.raw(`</section></aside></div>`)
		return w.err
	})
}

// WeatherCard renders current conditions and the short forecast.
func WeatherCard(snap models.WeatherSnapshot, localTime string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section id="weather" class="`, attr(classes("rounded-lg bg-white p-4 shadow", staleClass(snap.Stale))), `">`,
			`<div class="flex justify-between"><span class="temp text-2xl font-bold">`)
		w.printf("%.0f°C", snap.Current.TempC)
		w.raw(`</span><span class="clock text-sm">`)
		w.text(localTime)
		w.raw(`</span></div><p class="condition text-sm">`)
		w.text(string(snap.Current.Condition))
		w.printf(` · humidity %d%% · wind %.0f km/h</p>`, snap.Current.Humidity, snap.Current.WindKmh)
		w.raw(`<ol class="mt-2 flex justify-between text-xs">`)
		for _, d := range snap.Forecast {
			w.raw(`<li class="forecast-day flex flex-col items-center"><span>`)
			w.text(d.Label)
			w.raw(`</span><span>`)
			w.text(string(d.Condition))
			w.raw(`</span><span>`)
			w.text(fmt.Sprintf("%.0f°", d.TempC))
			w.raw(`</span></li>`)
		}
		w.raw(`</ol></section>`)
		return w.err
	})
}

func staleClass(stale bool) string {
	if stale {
		return "opacity-80"
	}
	return ""
}
