package calendar

import (
	"fmt"
	"time"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// WeekdayLabels heads the grid columns, Sunday first.
var WeekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month identifies a calendar page.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func MonthOf(d models.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// ParseMonth validates a year and a 1-based month number.
func ParseMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: month %d out of range", models.ErrBadRequest, month)
	}
	if year < 1 || year > 9999 {
		return Month{}, fmt.Errorf("%w: year %d out of range", models.ErrBadRequest, year)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) First() models.Date {
	return models.NewDate(m.Year, m.Month, 1)
}

// Days is the number of days in the month.
func (m Month) Days() int {
	return models.NewDate(m.Year, m.Month+1, 0).Day()
}

// Contains reports whether d falls in the month.
func (m Month) Contains(d models.Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Cell is one day of a grid.
type Cell struct {
	Day      int         `json:"day"`
	Date     models.Date `json:"date"`
	HasEvent bool        `json:"has_event"`
	Selected bool        `json:"selected,omitempty"`
	Today    bool        `json:"today,omitempty"`
}

// Grid is a rendered month: Leading blank cells, then one cell per day.
type Grid struct {
	Month    Month    `json:"month"`
	Label    string   `json:"label"`
	Weekdays []string `json:"weekdays"`
	Leading  int      `json:"leading"`
	Cells    []Cell   `json:"cells"`
	Prev     Month    `json:"prev"`
	Next     Month    `json:"next"`
}

// BuildGrid lays out m. Leading is the weekday of the 1st, Sunday = 0.
func BuildGrid(m Month, events []models.Event) Grid {
	g := Grid{
		Month:    m,
		Label:    m.String(),
		Weekdays: WeekdayLabels,
		Leading:  int(m.First().Weekday()),
		Cells:    make([]Cell, 0, m.Days()),
		Prev:     m.Prev(),
		Next:     m.Next(),
	}
	for day := 1; day <= m.Days(); day++ {
		date := models.NewDate(m.Year, m.Month, day)
		g.Cells = append(g.Cells, Cell{
			Day:      day,
			Date:     date,
			HasEvent: HasEvents(events, date),
		})
	}
	return g
}

// Mark flags the selected and today cells, when they fall in the grid month.
func (g *Grid) Mark(selected *models.Date, today models.Date) {
	for i := range g.Cells {
		g.Cells[i].Selected = selected != nil && g.Cells[i].Date.Equal(*selected)
		g.Cells[i].Today = g.Cells[i].Date.Equal(today)
	}
}

// Rows splits leading blanks and cells into weeks of seven. Blank slots are nil.
func (g Grid) Rows() [][]*Cell {
	total := g.Leading + len(g.Cells)
	rows := make([][]*Cell, 0, (total+6)/7)
	row := make([]*Cell, 0, 7)
	for i := 0; i < total; i++ {
		if i < g.Leading {
			row = append(row, nil)
		} else {
			row = append(row, &g.Cells[i-g.Leading])
		}
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]*Cell, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, nil)
		}
		rows = append(rows, row)
	}
	return rows
}
