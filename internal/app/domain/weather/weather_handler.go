package weather

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/juanito/internal/app/handlers"
	"github.com/FACorreiaa/juanito/internal/app/models"
)

// ClockLayout is the 12-hour clock shown beside the weather.
const ClockLayout = "03:04 PM"

type Handler struct {
	*handlers.BaseHandler
	service *Service
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(base *handlers.BaseHandler, service *Service, loc *time.Location) *Handler {
	return &Handler{BaseHandler: base, service: service, loc: loc, now: time.Now}
}

type weatherResponse struct {
	models.WeatherSnapshot
	LocalTime string `json:"local_time"`
}

type refreshResponse struct {
	weatherResponse
	Refreshed bool   `json:"refreshed"`
	Reason    string `json:"reason,omitempty"`
}

// GetWeather serves GET /api/weather.
func (h *Handler) GetWeather(c *gin.Context) {
	c.JSON(http.StatusOK, weatherResponse{
		WeatherSnapshot: h.service.Current(),
		LocalTime:       h.now().In(h.loc).Format(ClockLayout),
	})
}

// RefreshWeather serves POST /api/weather/refresh. Provider failures still
// answer 200 with the last known data.
func (h *Handler) RefreshWeather(c *gin.Context) {
	snap, err := h.service.Refresh(c.Request.Context())
	resp := refreshResponse{
		weatherResponse: weatherResponse{
			WeatherSnapshot: snap,
			LocalTime:       h.now().In(h.loc).Format(ClockLayout),
		},
		Refreshed: err == nil,
	}
	switch {
	case errors.Is(err, models.ErrMissingAPIKey):
		resp.Reason = "weather provider not configured"
	case err != nil:
		resp.Reason = "weather provider unavailable"
	}
	c.JSON(http.StatusOK, resp)
}
