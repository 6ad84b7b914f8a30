package calendar

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/juanito/internal/app/handlers"
	"github.com/FACorreiaa/juanito/internal/app/models"
)

type Handler struct {
	*handlers.BaseHandler
	service *Service
}

func NewHandler(base *handlers.BaseHandler, service *Service) *Handler {
	return &Handler{BaseHandler: base, service: service}
}

// GetMonth serves GET /api/calendar?year=2025&month=6&selected=2025-06-22.
// Without year and month the selected day's month, else the current month, is shown.
func (h *Handler) GetMonth(c *gin.Context) {
	view, err := h.monthFromQuery(c)
	if err != nil {
		h.Error(c, err, "Invalid calendar query")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetDay serves GET /api/calendar/day/:date.
func (h *Handler) GetDay(c *gin.Context) {
	day, err := models.ParseDate(c.Param("date"))
	if err != nil {
		h.Error(c, err, "Invalid date, expected YYYY-MM-DD")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   day,
		"events": h.service.Day(c.Request.Context(), day),
	})
}

// ListEvents serves GET /api/events.
func (h *Handler) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": h.service.Events()})
}

// ListUpcoming serves GET /api/events/upcoming?limit=5.
func (h *Handler) ListUpcoming(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.Error(c, fmt.Errorf("%w: limit %q", models.ErrBadRequest, raw), "Invalid limit")
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": h.service.Upcoming(limit)})
}

// ExportICS serves GET /api/events.ics.
func (h *Handler) ExportICS(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="san-juan-events.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(h.service.ICS()))
}

// MonthFromQuery is shared with the HTML calendar page.
func (h *Handler) MonthFromQuery(c *gin.Context) (MonthView, error) {
	return h.monthFromQuery(c)
}

func (h *Handler) monthFromQuery(c *gin.Context) (MonthView, error) {
	var selected *models.Date
	if raw := c.Query("selected"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return MonthView{}, err
		}
		selected = &d
	}

	m := MonthOf(h.service.Today())
	if selected != nil {
		m = MonthOf(*selected)
	}

	yearRaw, monthRaw := c.Query("year"), c.Query("month")
	if yearRaw != "" || monthRaw != "" {
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			return MonthView{}, fmt.Errorf("%w: year %q", models.ErrBadRequest, yearRaw)
		}
		month, err := strconv.Atoi(monthRaw)
		if err != nil {
			return MonthView{}, fmt.Errorf("%w: month %q", models.ErrBadRequest, monthRaw)
		}
		if m, err = ParseMonth(year, month); err != nil {
			return MonthView{}, err
		}
	}

	return h.service.Month(c.Request.Context(), m, selected), nil
}
