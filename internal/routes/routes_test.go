package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_RegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Setup(r, &AppHandlers{})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /",
		"GET /calendar",
		"GET /rules",
		"GET /ws/selections",
		"GET /api/rules",
		"GET /api/products",
		"GET /api/search",
		"POST /api/chat",
		"GET /api/chat/suggestions",
		"GET /api/chat/interactions",
		"POST /api/chat/dialogs",
		"GET /api/chat/dialogs/:id",
		"POST /api/chat/dialogs/:id/messages",
		"DELETE /api/chat/dialogs/:id",
		"GET /api/places",
		"GET /api/places.gpx",
		"GET /api/places/:id",
		"GET /api/places/:id/directions",
		"POST /api/places/:id/select",
		"GET /api/weather",
		"POST /api/weather/refresh",
		"GET /api/calendar",
		"GET /api/calendar/day/:date",
		"GET /api/events",
		"GET /api/events/upcoming",
		"GET /api/events.ics",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetup_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Setup(r, &AppHandlers{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
