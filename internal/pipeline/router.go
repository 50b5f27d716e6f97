package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/havenchat/haven/internal/domain"
	"github.com/havenchat/haven/internal/llm"
	"go.uber.org/zap"
)

const (
	// FallbackReply is appended when the language-model call itself fails
	FallbackReply = "I'm here for you. I had trouble forming a response—could you tell me a little more?"
	// emptyReplyFallback is used when the model parsed fine but said nothing
	emptyReplyFallback = "I'm here with you. Could you share a bit more about what's on your mind?"
)

// RouterStage produces the empathetic reply and classifies the turn's intent.
// It never returns an error: every failure degrades to a fixed fallback reply
// with intent "unknown".
type RouterStage struct {
	llm     llm.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewRouterStage creates the reply-and-classify stage
func NewRouterStage(client llm.Client, timeout time.Duration, logger *zap.Logger) *RouterStage {
	return &RouterStage{llm: client, timeout: timeout, logger: logger}
}

// Run calls the language model with the latest user text, parses the
// structured output, appends the assistant reply to the state's history and
// sets the normalized intent and search query.
func (s *RouterStage) Run(ctx context.Context, state *State) {
	prompt := buildPrompt(state.Language, lastUserText(state.History))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("language model call failed, soft fallback",
			zap.String("user_id", state.UserID),
			zap.Error(err),
		)
		state.History = append(state.History, domain.NewMessage(domain.RoleAssistant, FallbackReply))
		state.Intent = domain.IntentUnknown
		state.SearchQuery = ""
		return
	}

	out := parseRouterOutput(raw)

	reply := strings.TrimSpace(out.AssistantReply)
	if reply == "" {
		reply = emptyReplyFallback
	}

	state.History = append(state.History, domain.NewMessage(domain.RoleAssistant, reply))
	state.Intent = normalizeIntent(out.Intent)
	if state.Intent == domain.IntentResources {
		state.SearchQuery = strings.TrimSpace(out.SearchQuery)
	} else {
		state.SearchQuery = ""
	}
}

// lastUserText scans history backward for the most recent user message.
// An empty history yields the empty string; the stage still runs.
func lastUserText(history []domain.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleUser {
			return history[i].Content
		}
	}
	return ""
}

func buildPrompt(language, userText string) string {
	var sb strings.Builder
	if language != "" {
		sb.WriteString("User prefers language: ")
		sb.WriteString(language)
		sb.WriteString("\n")
	}
	sb.WriteString("User says:\n")
	sb.WriteString(userText)
	return strings.TrimSpace(sb.String())
}
