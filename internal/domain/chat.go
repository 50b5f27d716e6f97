package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Intent is the normalized classification of a user turn
type Intent string

const (
	IntentChat      Intent = "chat"
	IntentResources Intent = "resources"
	IntentUnknown   Intent = "unknown"
)

// Message represents a single conversational turn
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message with a fresh id and timestamp
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// ResourceSummary is one ranked web-search result
type ResourceSummary struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Score   float64 `json:"relevance_score"`
	Snippet string  `json:"snippet"`
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Language string `json:"language,omitempty"`
}

// ChatResponse is the aggregate result of one conversation turn
type ChatResponse struct {
	Reply       string            `json:"reply"`
	Intent      Intent            `json:"intent"`
	SearchQuery *string           `json:"search_query"`
	Resources   []ResourceSummary `json:"resources"`
	Suggestions []string          `json:"suggestions"`
}

// ResetRequest is the request to clear a user's conversation
type ResetRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
