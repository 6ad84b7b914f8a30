package calendar

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

func date(s string) models.Date { return models.MustParseDate(s) }

func datePtr(s string) *models.Date {
	d := date(s)
	return &d
}

func event(id, start string, end *models.Date, weekly bool) models.Event {
	return models.Event{
		Place:  models.Place{ID: id, Name: id, Category: models.CategoryAttraction},
		Start:  date(start),
		End:    end,
		Weekly: weekly,
	}
}

var (
	foodFestival = event("food-festival", "2025-06-22", datePtr("2025-06-23"), false)
	fiesta       = event("fiesta", "2025-06-24", nil, false)
	market       = event("farmers-market", "2025-06-07", nil, true)
	cleanup      = event("beach-cleanup", "2025-06-15", nil, false)
)

func TestIsActive_MultiDaySpan(t *testing.T) {
	assert.True(t, IsActive(foodFestival, date("2025-06-22")))
	assert.True(t, IsActive(foodFestival, date("2025-06-23")))
	assert.False(t, IsActive(foodFestival, date("2025-06-24")))
	assert.False(t, IsActive(foodFestival, date("2025-06-21")))
}

func TestIsActive_SingleDay(t *testing.T) {
	assert.True(t, IsActive(fiesta, date("2025-06-24")))
	assert.False(t, IsActive(fiesta, date("2025-06-25")))
	assert.False(t, IsActive(fiesta, date("2024-06-24")))
}

func TestIsActive_WeeklyOnEverySaturday(t *testing.T) {
	for _, m := range []Month{{2025, time.May}, {2025, time.June}, {2025, time.December}, {2026, time.January}} {
		for _, cell := range BuildGrid(m, nil).Cells {
			want := cell.Date.Weekday() == time.Saturday
			assert.Equal(t, want, IsActive(market, cell.Date), cell.Date.String())
		}
	}
}

func TestIsActive_EndBeforeStart(t *testing.T) {
	backwards := event("backwards", "2025-06-10", datePtr("2025-06-01"), false)
	assert.True(t, IsActive(backwards, date("2025-06-10")))
	assert.False(t, IsActive(backwards, date("2025-06-05")))
	assert.False(t, IsActive(backwards, date("2025-06-01")))
}

func TestActiveEvents_PreservesDeclarationOrder(t *testing.T) {
	sameDay := event("also-saturday", "2025-06-28", nil, false)
	events := []models.Event{sameDay, cleanup, market}

	got := ActiveEvents(events, date("2025-06-28"))
	require.Len(t, got, 2)
	assert.Equal(t, "also-saturday", got[0].ID)
	assert.Equal(t, "farmers-market", got[1].ID)

	assert.Empty(t, ActiveEvents(events, date("2025-06-16")))
	assert.NotNil(t, ActiveEvents(nil, date("2025-06-16")))
}

func TestMonthNavigation(t *testing.T) {
	assert.Equal(t, Month{2024, time.December}, Month{2025, time.January}.Prev())
	assert.Equal(t, Month{2026, time.January}, Month{2025, time.December}.Next())
	assert.Equal(t, Month{2025, time.July}, Month{2025, time.June}.Next())
	assert.Equal(t, Month{2025, time.May}, Month{2025, time.June}.Prev())

	m := Month{2025, time.March}
	for i := 0; i < 24; i++ {
		m = m.Next()
	}
	assert.Equal(t, Month{2027, time.March}, m)
	for i := 0; i < 24; i++ {
		m = m.Prev()
	}
	assert.Equal(t, Month{2025, time.March}, m)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth(2025, 6)
	require.NoError(t, err)
	assert.Equal(t, Month{2025, time.June}, m)

	_, err = ParseMonth(2025, 13)
	assert.ErrorIs(t, err, models.ErrBadRequest)
	_, err = ParseMonth(0, 1)
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestBuildGrid(t *testing.T) {
	events := []models.Event{foodFestival, fiesta, market, cleanup}

	g := BuildGrid(Month{2025, time.June}, events)
	assert.Equal(t, "June 2025", g.Label)
	assert.Equal(t, 0, g.Leading, "1 June 2025 is a Sunday")
	require.Len(t, g.Cells, 30)

	marked := []int{}
	for _, c := range g.Cells {
		if c.HasEvent {
			marked = append(marked, c.Day)
		}
	}
	assert.Equal(t, []int{7, 14, 15, 21, 22, 23, 24, 28}, marked)

	feb := BuildGrid(Month{2024, time.February}, nil)
	assert.Len(t, feb.Cells, 29)
	assert.Equal(t, 4, feb.Leading, "1 February 2024 is a Thursday")

	assert.Equal(t, Month{2025, time.May}, g.Prev)
	assert.Equal(t, Month{2025, time.July}, g.Next)
}

func TestGridRows(t *testing.T) {
	g := BuildGrid(Month{2025, time.February}, nil)
	rows := g.Rows()
	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
	assert.Nil(t, rows[0][5])
	require.NotNil(t, rows[0][6])
	assert.Equal(t, 1, rows[0][6].Day)
	assert.Nil(t, rows[4][6])
}

func TestView_SelectReplacesPrevious(t *testing.T) {
	v := NewView(Month{2025, time.June}, []models.Event{foodFestival, fiesta, market})

	got := v.Select(date("2025-06-22"))
	require.Len(t, got, 1)
	assert.Equal(t, "food-festival", got[0].ID)

	got = v.Select(date("2025-06-24"))
	require.Len(t, got, 1)
	assert.Equal(t, "fiesta", got[0].ID)

	grid := v.Grid(date("2025-06-01"))
	selected := 0
	for _, c := range grid.Cells {
		if c.Selected {
			selected++
			assert.Equal(t, 24, c.Day)
		}
	}
	assert.Equal(t, 1, selected)
	assert.True(t, grid.Cells[0].Today)

	v.Next()
	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Empty(t, v.SelectedEvents())
	assert.Equal(t, Month{2025, time.July}, v.Month())
}

func TestNextOccurrence(t *testing.T) {
	d, ok := NextOccurrence(fiesta, date("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, "2025-06-24", d.String())

	_, ok = NextOccurrence(fiesta, date("2025-06-25"))
	assert.False(t, ok)

	d, ok = NextOccurrence(foodFestival, date("2025-06-23"))
	require.True(t, ok)
	assert.Equal(t, "2025-06-23", d.String())

	d, ok = NextOccurrence(market, date("2025-06-09"))
	require.True(t, ok)
	assert.Equal(t, "2025-06-14", d.String())

	d, ok = NextOccurrence(market, date("2025-06-14"))
	require.True(t, ok)
	assert.Equal(t, "2025-06-14", d.String())

	d, ok = NextOccurrence(market, date("2025-05-01"))
	require.True(t, ok)
	assert.Equal(t, "2025-05-03", d.String(), "weekly events recur before their start date")
	assert.True(t, IsActive(market, d))
}

func TestUpcoming(t *testing.T) {
	events := []models.Event{fiesta, foodFestival, market, cleanup}

	got := Upcoming(events, date("2025-06-16"), 0)
	require.Len(t, got, 3)
	assert.Equal(t, "farmers-market", got[0].Event.ID)
	assert.Equal(t, "2025-06-21", got[0].Date.String())
	assert.Equal(t, "food-festival", got[1].Event.ID)
	assert.Equal(t, "fiesta", got[2].Event.ID)

	assert.Len(t, Upcoming(events, date("2025-06-16"), 2), 2)
}

func TestICS(t *testing.T) {
	stamp := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	out := ICS("San Juan Events", []models.Event{foodFestival, market}, stamp)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	food := events[0]
	assert.Equal(t, "food-festival@juanito", food.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "20250622", food.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20250624", food.GetProperty(ical.ComponentPropertyDtEnd).Value)
	assert.Nil(t, food.GetProperty(ical.ComponentPropertyRrule))

	weekly := events[1]
	require.NotNil(t, weekly.GetProperty(ical.ComponentPropertyRrule))
	assert.Contains(t, weekly.GetProperty(ical.ComponentPropertyRrule).Value, "BYDAY=SA")
	assert.Equal(t, "20250608", weekly.GetProperty(ical.ComponentPropertyDtEnd).Value)
}
