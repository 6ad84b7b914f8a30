package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/app/domain/calendar"
	"github.com/FACorreiaa/juanito/internal/app/models"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func juneView(t *testing.T, selected string) calendar.MonthView {
	t.Helper()
	svc := calendar.NewService("Events", testCatalog(t).Events, time.UTC, zap.NewNop())
	var sel *models.Date
	if selected != "" {
		d := models.MustParseDate(selected)
		sel = &d
	}
	return svc.Month(context.Background(), calendar.Month{Year: 2025, Month: time.June}, sel)
}

func TestBeachRules(t *testing.T) {
	doc := render(t, BeachRules([]models.BeachRule{
		{Title: "No Littering", Text: "Use the bins."},
		{Title: "<Swim> Safely", Text: "Follow lifeguards & flags."},
	}))

	items := doc.Find("li.beach-rule")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "No Littering", items.First().Find("h3").Text())
	assert.Equal(t, "<Swim> Safely", items.Last().Find("h3").Text(), "text is escaped, not parsed as markup")
	assert.Equal(t, 0, doc.Find("swim").Length())
	idx, _ := items.Last().Attr("data-index")
	assert.Equal(t, "2", idx)
}

func TestCalendar(t *testing.T) {
	doc := render(t, Calendar(juneView(t, "2025-06-21")))

	assert.Equal(t, "June 2025", doc.Find("h2").First().Text())
	assert.Equal(t, 7, doc.Find("thead th").Length())
	assert.Equal(t, 30, doc.Find("td a[data-date]").Length())
	assert.Equal(t, 5, doc.Find("tbody tr").Length())

	first, _ := doc.Find("tbody tr").First().Find("td a").First().Attr("data-date")
	assert.Equal(t, "2025-06-01", first, "June 2025 starts on a Sunday")

	eventDays := 0
	doc.Find("td a[data-date]").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.AttrOr("class", ""), "bg-amber-100") {
			eventDays++
		}
	})
	assert.Equal(t, 7, eventDays, "event days other than the selected one")

	selected := doc.Find(`a[data-date="2025-06-21"]`)
	cls := selected.AttrOr("class", "")
	assert.Contains(t, cls, "bg-sky-600")
	assert.NotContains(t, cls, "bg-amber-100", "selection background replaces the event background")

	prev, _ := doc.Find("a.prev").Attr("href")
	assert.Equal(t, "/calendar?year=2025&month=5", prev)

	events := doc.Find("#day-events li.event")
	require.Equal(t, 1, events.Length())
	assert.Contains(t, events.Text(), "Organic Farmers Market")
}

func TestCalendar_EmptyDay(t *testing.T) {
	doc := render(t, Calendar(juneView(t, "2025-06-10")))
	assert.Equal(t, 1, doc.Find("#day-events p.empty").Length())

	doc = render(t, Calendar(juneView(t, "")))
	assert.Equal(t, 0, doc.Find("#day-events").Length())
}

func TestHome(t *testing.T) {
	cat := testCatalog(t)
	doc := render(t, Layout("San Juan", Home(HomeData{
		Places:      cat.Places,
		Products:    cat.Products,
		Weather:     cat.Weather,
		LocalTime:   "03:04 PM",
		Greeting:    cat.Chat.Greeting,
		Suggestions: cat.Chat.Suggestions,
	})))

	assert.Equal(t, "San Juan | Juanito", doc.Find("title").Text())
	assert.Equal(t, len(MainNav), doc.Find("nav a").Length())
	assert.Equal(t, 6, doc.Find("li.place").Length())
	assert.Equal(t, 4, doc.Find("li.product").Length())
	assert.Equal(t, 4, doc.Find("li.suggestion").Length())
	assert.Equal(t, 5, doc.Find("li.forecast-day").Length())
	assert.Equal(t, "03:04 PM", doc.Find("#weather .clock").Text())
	assert.Equal(t, 1+len(models.Categories), doc.Find("button.filter").Length())

	badge := doc.Find(`li.place[data-id="static:laiya-beach"] span`).First().AttrOr("class", "")
	assert.Contains(t, badge, "bg-sky-100")
	assert.NotContains(t, badge, "bg-slate-100")
}
