package places

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/handlers"
	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/app/observability/metrics"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	*handlers.BaseHandler
	service *Service
}

func NewHandler(base *handlers.BaseHandler, service *Service) *Handler {
	return &Handler{BaseHandler: base, service: service}
}

// selectionMessage is what selection listeners receive over the socket.
type selectionMessage struct {
	Type      string         `json:"type"`
	Selection *PlaceSelected `json:"selection,omitempty"`
}

func categoryParam(c *gin.Context) (models.Category, error) {
	category, ok := ParseCategory(c.Query("category"))
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", models.ErrBadRequest, c.Query("category"))
	}
	return category, nil
}

// ListPlaces serves GET /api/places?category=beach.
func (h *Handler) ListPlaces(c *gin.Context) {
	category, err := categoryParam(c)
	if err != nil {
		h.Error(c, err, "Unknown category")
		return
	}
	places, err := h.service.Places(c.Request.Context(), category)
	if err != nil {
		h.Error(c, err, "Failed to load places")
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places, "count": len(places)})
}

// GetPlace serves GET /api/places/:id.
func (h *Handler) GetPlace(c *gin.Context) {
	place, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, place)
}

// GetDirections serves GET /api/places/:id/directions?lat=&lng=. Without a
// position the response carries a notice instead of a route.
func (h *Handler) GetDirections(c *gin.Context) {
	origin, err := originParam(c)
	if err != nil {
		h.Error(c, err, "Invalid origin")
		return
	}
	dir, err := h.service.Directions(c.Request.Context(), c.Param("id"), origin)
	if err != nil {
		msg := "Failed to compute directions"
		if handlers.StatusFor(err) == http.StatusNotFound {
			msg = "Place not found"
		}
		h.Error(c, err, msg)
		return
	}
	c.JSON(http.StatusOK, dir)
}

func originParam(c *gin.Context) (*models.Coordinate, error) {
	rawLat, rawLng := c.Query("lat"), c.Query("lng")
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lng, errLng := strconv.ParseFloat(rawLng, 64)
	if errLat != nil || errLng != nil {
		return nil, fmt.Errorf("%w: lat=%q lng=%q", models.ErrBadRequest, rawLat, rawLng)
	}
	return &models.Coordinate{Lat: lat, Lng: lng}, nil
}

// SelectPlace serves POST /api/places/:id/select.
func (h *Handler) SelectPlace(c *gin.Context) {
	ev, delivered, err := h.service.Select(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err, "Place not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": ev, "listeners": delivered})
}

// Search serves GET /api/search?q=.
func (h *Handler) Search(c *gin.Context) {
	result := h.service.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"query":    result.Query,
		"places":   result.Places,
		"events":   result.Events,
		"products": result.Products,
		"total":    result.Total(),
	})
}

// ExportGPX serves GET /api/places.gpx?category= as a download.
func (h *Handler) ExportGPX(c *gin.Context) {
	category, err := categoryParam(c)
	if err != nil {
		h.Error(c, err, "Unknown category")
		return
	}
	doc, err := h.service.ExportGPX(c.Request.Context(), category)
	if err != nil {
		h.Error(c, err, "Failed to export places")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="san-juan-places.gpx"`)
	c.Data(http.StatusOK, "application/gpx+xml", doc)
}

// Selections serves GET /ws/selections, streaming every place selection to the client.
func (h *Handler) Selections(c *gin.Context) {
	sub := h.service.Selections()
	defer h.service.CloseSelections(sub)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("Failed to upgrade to WebSocket", zap.Error(err))
		return
	}
	defer ws.Close()

	ctx := c.Request.Context()
	m := metrics.Get()
	m.SelectionSubscribers.Add(ctx, 1)
	defer m.SelectionSubscribers.Add(ctx, -1)

	h.Logger.Info("Selection listener connected", zap.String("subscription", sub.ID))

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			h.Logger.Info("Selection listener disconnected",
				zap.String("subscription", sub.ID),
				zap.Int64("dropped", sub.Dropped()))
			return
		case ev, ok := <-sub.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := ws.WriteJSON(selectionMessage{Type: "place_selected", Selection: &ev}); err != nil {
				h.Logger.Warn("Failed to write selection", zap.Error(err))
				return
			}
		}
	}
}
