package service

import (
	"context"
	"sync"

	"github.com/havenchat/haven/internal/domain"
	"github.com/havenchat/haven/internal/pipeline"
	"github.com/havenchat/haven/internal/session"
	"go.uber.org/zap"
)

// genericReply covers the case where no assistant message exists after a run
const genericReply = "I'm here and listening."

// Suggestions is the fixed list of follow-up prompts returned on every turn
var Suggestions = []string{
	"Suggest one tiny step I can take today.",
	"Help me reframe this thought.",
	"Teach me a 2-minute grounding exercise.",
}

// ConversationService runs one conversation turn end to end: read history,
// append the user message, run the pipeline, write history back, shape the
// response payload.
type ConversationService struct {
	store    session.Store
	pipeline *pipeline.Controller
	logger   *zap.Logger

	// serializes the read-mutate-write turn sequence per user, so two
	// simultaneous turns for one user cannot drop each other's history
	locks sync.Map
}

// NewConversationService creates a conversation service
func NewConversationService(store session.Store, controller *pipeline.Controller, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		store:    store,
		pipeline: controller,
		logger:   logger,
	}
}

// RunConversation executes one turn for the user. It never returns an error:
// collaborator failures degrade to fixed fallback replies inside the pipeline.
func (s *ConversationService) RunConversation(ctx context.Context, userID, userMessage, language string) *domain.ChatResponse {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	history := s.store.Get(userID)
	history = append(history, domain.NewMessage(domain.RoleUser, userMessage))

	state := &pipeline.State{
		UserID:   userID,
		History:  history,
		Language: language,
	}

	s.pipeline.Run(ctx, state)

	s.store.Put(userID, state.History)

	s.logger.Info("conversation turn complete",
		zap.String("user_id", userID),
		zap.String("intent", string(state.Intent)),
		zap.Int("resources", len(state.Resources)),
	)

	return shapeResponse(state)
}

// ResetSession clears the user's history. Unknown users are a no-op success.
func (s *ConversationService) ResetSession(userID string) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.store.Reset(userID)
	s.logger.Info("session reset", zap.String("user_id", userID))
}

func (s *ConversationService) userLock(userID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func shapeResponse(state *pipeline.State) *domain.ChatResponse {
	reply := genericReply
	for i := len(state.History) - 1; i >= 0; i-- {
		if state.History[i].Role == domain.RoleAssistant {
			reply = state.History[i].Content
			break
		}
	}

	var query *string
	if state.SearchQuery != "" {
		q := state.SearchQuery
		query = &q
	}

	resources := state.Resources
	if resources == nil {
		resources = []domain.ResourceSummary{}
	}

	return &domain.ChatResponse{
		Reply:       reply,
		Intent:      state.Intent,
		SearchQuery: query,
		Resources:   resources,
		Suggestions: Suggestions,
	}
}
