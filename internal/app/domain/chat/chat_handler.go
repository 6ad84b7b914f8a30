package chat

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/juanito/internal/app/handlers"
	"github.com/FACorreiaa/juanito/internal/app/models"
)

const chatRequestError = "Failed to process chat request"

type Handler struct {
	*handlers.BaseHandler
	service *Service
	dialogs *Dialogs
}

func NewHandler(base *handlers.BaseHandler, service *Service, dialogs *Dialogs) *Handler {
	return &Handler{BaseHandler: base, service: service, dialogs: dialogs}
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []messageDTO `json:"messages" binding:"required"`
}

type sendRequest struct {
	Content string `json:"content" binding:"required"`
}

// Chat serves POST /api/chat.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, fmt.Errorf("%w: %v", models.ErrBadRequest, err), chatRequestError)
		return
	}

	messages := make([]models.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, models.ChatMessage{Role: models.NormalizeRole(m.Role), Content: m.Content})
	}

	reply, err := h.service.Reply(c.Request.Context(), messages)
	if err != nil {
		h.Error(c, err, chatRequestError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply.Text, "fallback": reply.Fallback})
}

// Suggestions serves GET /api/chat/suggestions.
func (h *Handler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"greeting":    h.service.Greeting(),
		"suggestions": h.service.Suggestions(),
	})
}

// OpenDialog serves POST /api/chat/dialogs.
func (h *Handler) OpenDialog(c *gin.Context) {
	c.JSON(http.StatusCreated, h.dialogs.Open())
}

// GetDialog serves GET /api/chat/dialogs/:id.
func (h *Handler) GetDialog(c *gin.Context) {
	dlg, err := h.dialogs.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err, "Dialog not found")
		return
	}
	c.JSON(http.StatusOK, dlg)
}

// SendMessage serves POST /api/chat/dialogs/:id/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, fmt.Errorf("%w: %v", models.ErrBadRequest, err), chatRequestError)
		return
	}

	dlg, reply, err := h.dialogs.Send(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		h.Error(c, err, sendErrorMessage(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dialog":   dlg,
		"response": reply.Text,
		"fallback": reply.Fallback,
	})
}

// CloseDialog serves DELETE /api/chat/dialogs/:id.
func (h *Handler) CloseDialog(c *gin.Context) {
	if err := h.dialogs.Close(c.Param("id")); err != nil {
		h.Error(c, err, "Dialog not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// maxInteractionsLimit bounds ?limit= on the interaction log.
const maxInteractionsLimit = 100

// Interactions serves GET /api/chat/interactions?limit=20.
func (h *Handler) Interactions(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxInteractionsLimit {
			h.Error(c, fmt.Errorf("%w: limit %q", models.ErrBadRequest, raw), "Invalid limit")
			return
		}
		limit = n
	}

	items, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err, "Failed to load chat interactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"interactions": items})
}

func sendErrorMessage(err error) string {
	switch handlers.StatusFor(err) {
	case http.StatusNotFound:
		return "Dialog not found"
	case http.StatusConflict:
		return "A reply is already being prepared"
	default:
		return chatRequestError
	}
}
