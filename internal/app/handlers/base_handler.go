package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// LayoutFunc wraps a fragment into a full page.
type LayoutFunc func(title string, content templ.Component) templ.Component

type BaseHandler struct {
	Logger *zap.Logger
	Layout LayoutFunc
}

func NewBaseHandler(logger *zap.Logger, layout LayoutFunc) *BaseHandler {
	return &BaseHandler{Logger: logger, Layout: layout}
}

func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.String("path", c.FullPath()), zap.Error(err))
	}
}

// RenderPage sends only the fragment to HTMX requests and the full layout
// otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, title string, content templ.Component) {
	if c.GetHeader("HX-Request") == "true" || h.Layout == nil {
		h.Render(c, http.StatusOK, content)
		return
	}
	h.Render(c, http.StatusOK, h.Layout(title, content))
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, models.ErrUpstream), errors.Is(err, models.ErrMissingAPIKey):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error writes {"error": msg} with the status for err. Server errors are
// logged with the underlying cause and answered with msg only.
func (h *BaseHandler) Error(c *gin.Context, err error, msg string) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.Logger.Debug(msg, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}
