package chat

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/havenchat/haven/internal/domain"
	"github.com/havenchat/haven/internal/service"
)

// Handler handles conversation API requests
type Handler struct {
	conversations *service.ConversationService
}

// NewHandler creates a new chat handler
func NewHandler(conversations *service.ConversationService) *Handler {
	return &Handler{conversations: conversations}
}

// RegisterRoutes registers conversation routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.POST("/reset", h.Reset)
}

// Chat handles one conversation turn
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyMessage.Error()})
		return
	}

	resp := h.conversations.RunConversation(c.Request.Context(), req.UserID, message, req.Language)
	c.JSON(http.StatusOK, resp)
}

// Reset clears a user's conversation history
func (h *Handler) Reset(c *gin.Context) {
	var req domain.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.conversations.ResetSession(req.UserID)
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"user_id": req.UserID,
		"message": fmt.Sprintf("Session %s cleared.", req.UserID),
	})
}
