package pages

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/app/components"
	"github.com/FACorreiaa/juanito/internal/app/domain/calendar"
	"github.com/FACorreiaa/juanito/internal/app/domain/chat"
	"github.com/FACorreiaa/juanito/internal/app/domain/places"
	"github.com/FACorreiaa/juanito/internal/app/domain/weather"
	"github.com/FACorreiaa/juanito/internal/app/handlers"
)

// Handler serves the HTML pages and the static catalog content.
type Handler struct {
	*handlers.BaseHandler
	catalog  *catalog.Catalog
	places   *places.Service
	weather  *weather.Service
	chat     *chat.Service
	calendar *calendar.Handler
	loc      *time.Location
	now      func() time.Time
}

func NewHandler(base *handlers.BaseHandler, cat *catalog.Catalog, placesService *places.Service,
	weatherService *weather.Service, chatService *chat.Service, calendarHandler *calendar.Handler,
	loc *time.Location) *Handler {
	return &Handler{
		BaseHandler: base,
		catalog:     cat,
		places:      placesService,
		weather:     weatherService,
		chat:        chatService,
		calendar:    calendarHandler,
		loc:         loc,
		now:         time.Now,
	}
}

// Home serves GET /.
func (h *Handler) Home(c *gin.Context) {
	list, err := h.places.Places(c.Request.Context(), places.CategoryAll)
	if err != nil {
		h.Error(c, err, "Failed to load places")
		return
	}
	h.RenderPage(c, h.catalog.Area.Name, components.Home(components.HomeData{
		Places:      list,
		Products:    h.catalog.Products,
		Weather:     h.weather.Current(),
		LocalTime:   h.now().In(h.loc).Format(weather.ClockLayout),
		Greeting:    h.chat.Greeting(),
		Suggestions: h.chat.Suggestions(),
	}))
}

// Calendar serves GET /calendar?year=&month=&selected=.
func (h *Handler) Calendar(c *gin.Context) {
	view, err := h.calendar.MonthFromQuery(c)
	if err != nil {
		h.Error(c, err, "Invalid calendar query")
		return
	}
	h.RenderPage(c, "Events", components.Calendar(view))
}

// Rules serves GET /rules.
func (h *Handler) Rules(c *gin.Context) {
	h.RenderPage(c, "Beach Rules", components.BeachRules(h.catalog.BeachRules))
}

// ListRules serves GET /api/rules.
func (h *Handler) ListRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": h.catalog.BeachRules})
}

// ListProducts serves GET /api/products.
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.Products})
}
