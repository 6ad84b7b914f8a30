package calendar

import "github.com/FACorreiaa/juanito/internal/app/models"

// View is the interactive state of one calendar widget: the page being shown
// and at most one selected day.
type View struct {
	month    Month
	selected *models.Date
	events   []models.Event
}

func NewView(m Month, events []models.Event) *View {
	return &View{month: m, events: events}
}

func (v *View) Month() Month {
	return v.month
}

// Select replaces any previous selection with day and returns its events in
// declaration order.
func (v *View) Select(day models.Date) []models.Event {
	d := day
	v.selected = &d
	return ActiveEvents(v.events, day)
}

// Selected returns the selected day, if any.
func (v *View) Selected() (models.Date, bool) {
	if v.selected == nil {
		return models.Date{}, false
	}
	return *v.selected, true
}

// SelectedEvents lists the events of the selected day, empty without one.
func (v *View) SelectedEvents() []models.Event {
	if v.selected == nil {
		return []models.Event{}
	}
	return ActiveEvents(v.events, *v.selected)
}

func (v *View) ClearSelection() {
	v.selected = nil
}

// Prev and Next turn the page and drop the selection.
func (v *View) Prev() {
	v.month = v.month.Prev()
	v.selected = nil
}

func (v *View) Next() {
	v.month = v.month.Next()
	v.selected = nil
}

// Grid renders the current page with the selection and today marked.
func (v *View) Grid(today models.Date) Grid {
	g := BuildGrid(v.month, v.events)
	g.Mark(v.selected, today)
	return g
}
