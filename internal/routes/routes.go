package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/juanito/internal/app/domain/calendar"
	"github.com/FACorreiaa/juanito/internal/app/domain/chat"
	"github.com/FACorreiaa/juanito/internal/app/domain/pages"
	"github.com/FACorreiaa/juanito/internal/app/domain/places"
	"github.com/FACorreiaa/juanito/internal/app/domain/weather"
)

type AppHandlers struct {
	Pages    *pages.Handler
	Chat     *chat.Handler
	Places   *places.Handler
	Weather  *weather.Handler
	Calendar *calendar.Handler
}

// Setup registers every page, API and websocket route on r.
func Setup(r *gin.Engine, h *AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Pages
	r.GET("/", h.Pages.Home)
	r.GET("/calendar", h.Pages.Calendar)
	r.GET("/rules", h.Pages.Rules)

	// Live place selections
	r.GET("/ws/selections", h.Places.Selections)

	api := r.Group("/api")
	{
		api.GET("/rules", h.Pages.ListRules)
		api.GET("/products", h.Pages.ListProducts)
		api.GET("/search", h.Places.Search)

		chatGroup := api.Group("/chat")
		{
			chatGroup.POST("", h.Chat.Chat)
			chatGroup.GET("/suggestions", h.Chat.Suggestions)
			chatGroup.GET("/interactions", h.Chat.Interactions)
			chatGroup.POST("/dialogs", h.Chat.OpenDialog)
			chatGroup.GET("/dialogs/:id", h.Chat.GetDialog)
			chatGroup.POST("/dialogs/:id/messages", h.Chat.SendMessage)
			chatGroup.DELETE("/dialogs/:id", h.Chat.CloseDialog)
		}

		api.GET("/places", h.Places.ListPlaces)
		api.GET("/places.gpx", h.Places.ExportGPX)
		placesGroup := api.Group("/places/:id")
		{
			placesGroup.GET("", h.Places.GetPlace)
			placesGroup.GET("/directions", h.Places.GetDirections)
			placesGroup.POST("/select", h.Places.SelectPlace)
		}

		api.GET("/weather", h.Weather.GetWeather)
		api.POST("/weather/refresh", h.Weather.RefreshWeather)

		api.GET("/calendar", h.Calendar.GetMonth)
		api.GET("/calendar/day/:date", h.Calendar.GetDay)
		api.GET("/events", h.Calendar.ListEvents)
		api.GET("/events/upcoming", h.Calendar.ListUpcoming)
		api.GET("/events.ics", h.Calendar.ExportICS)
	}
}
