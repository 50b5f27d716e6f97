package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/havenchat/haven/internal/domain"
	"github.com/havenchat/haven/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLLM struct {
	raw        string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.raw, s.err
}

func (s *stubLLM) Close() error { return nil }

type stubSearch struct {
	results []search.Result
	err     error
	calls   int
}

func (s *stubSearch) Search(_ context.Context, _ string, _ int) ([]search.Result, error) {
	s.calls++
	return s.results, s.err
}

func newController(llmStub *stubLLM, searchClient search.Client) *Controller {
	logger := zap.NewNop()
	return NewController(
		NewRouterStage(llmStub, 0, logger),
		NewSearchStage(searchClient, 0, logger),
	)
}

func userState(userID, message string) *State {
	return &State{
		UserID:  userID,
		History: []domain.Message{domain.NewMessage(domain.RoleUser, message)},
	}
}

func TestPipelineChatIntentSkipsSearch(t *testing.T) {
	llmStub := &stubLLM{raw: `{"assistant_reply":"That sounds hard. What happened?","intent":"chat","search_query":null}`}
	searchStub := &stubSearch{results: []search.Result{{Title: "x"}}}
	ctrl := newController(llmStub, searchStub)

	state := userState("u1", "I had a rough day")
	ctrl.Run(context.Background(), state)

	assert.Equal(t, domain.IntentChat, state.Intent)
	assert.Equal(t, "", state.SearchQuery)
	assert.Empty(t, state.Resources)
	assert.Equal(t, 0, searchStub.calls, "search must not run for chat intent")

	require.Len(t, state.History, 2)
	assert.Equal(t, domain.RoleAssistant, state.History[1].Role)
	assert.Equal(t, "That sounds hard. What happened?", state.History[1].Content)
}

func TestPipelineResourcesIntentRunsSearch(t *testing.T) {
	llmStub := &stubLLM{raw: `{"assistant_reply":"Here are some ideas, and I'll also find resources.","intent":"resources","search_query":"anxiety coping techniques articles"}`}

	var results []search.Result
	for i := 0; i < 7; i++ {
		results = append(results, search.Result{
			Title:   fmt.Sprintf("Article %d", i),
			URL:     fmt.Sprintf("https://example.org/%d", i),
			Score:   float64(7-i) / 10,
			Content: fmt.Sprintf("content %d", i),
		})
	}
	searchStub := &stubSearch{results: results}
	ctrl := newController(llmStub, searchStub)

	state := userState("u2", "can you point me to anxiety coping articles")
	ctrl.Run(context.Background(), state)

	assert.Equal(t, domain.IntentResources, state.Intent)
	assert.Equal(t, "anxiety coping techniques articles", state.SearchQuery)
	assert.Equal(t, 1, searchStub.calls)

	require.Len(t, state.Resources, MaxResources, "ranked list is capped at 5")
	assert.Equal(t, "Article 0", state.Resources[0].Title)
	assert.Equal(t, "content 0", state.Resources[0].Snippet)
	assert.Equal(t, "Article 4", state.Resources[4].Title)
}

func TestPipelineLLMFailureSoftFallback(t *testing.T) {
	llmStub := &stubLLM{err: errors.New("upstream timeout")}
	searchStub := &stubSearch{}
	ctrl := newController(llmStub, searchStub)

	state := userState("u3", "hello")
	ctrl.Run(context.Background(), state)

	assert.Equal(t, domain.IntentUnknown, state.Intent)
	assert.Equal(t, "", state.SearchQuery)
	assert.Equal(t, 0, searchStub.calls)

	require.Len(t, state.History, 2)
	assert.Equal(t, FallbackReply, state.History[1].Content)
}

func TestPipelineUnparsableOutputSoftFallback(t *testing.T) {
	llmStub := &stubLLM{raw: "sorry, I cannot produce JSON today"}
	searchStub := &stubSearch{}
	ctrl := newController(llmStub, searchStub)

	state := userState("u4", "hello")
	ctrl.Run(context.Background(), state)

	assert.Equal(t, domain.IntentUnknown, state.Intent)
	assert.Equal(t, 0, searchStub.calls)
	require.Len(t, state.History, 2)
	assert.Equal(t, defaultReply, state.History[1].Content)
}

func TestRouterEmptyReplySubstituted(t *testing.T) {
	llmStub := &stubLLM{raw: `{"assistant_reply":"   ","intent":"chat","search_query":null}`}
	ctrl := newController(llmStub, nil)

	state := userState("u5", "hi")
	ctrl.Run(context.Background(), state)

	require.Len(t, state.History, 2)
	assert.Equal(t, emptyReplyFallback, state.History[1].Content)
}

func TestRouterSpuriousQueryClearedForChatIntent(t *testing.T) {
	llmStub := &stubLLM{raw: `{"assistant_reply":"ok","intent":"chat","search_query":"should be dropped"}`}
	ctrl := newController(llmStub, &stubSearch{})

	state := userState("u6", "hi")
	ctrl.Run(context.Background(), state)

	assert.Equal(t, domain.IntentChat, state.Intent)
	assert.Equal(t, "", state.SearchQuery)
}

func TestRouterEmptyHistoryUsesEmptyPrompt(t *testing.T) {
	llmStub := &stubLLM{raw: `{"assistant_reply":"ok","intent":"chat","search_query":null}`}
	ctrl := newController(llmStub, nil)

	state := &State{UserID: "u7"}
	ctrl.Run(context.Background(), state)

	assert.Equal(t, 1, llmStub.calls)
	assert.Equal(t, "User says:", llmStub.lastPrompt)
	require.Len(t, state.History, 1)
	assert.Equal(t, domain.RoleAssistant, state.History[0].Role)
}

func TestRouterLanguageHintInPrompt(t *testing.T) {
	llmStub := &stubLLM{raw: `{"assistant_reply":"ok","intent":"chat","search_query":null}`}
	ctrl := newController(llmStub, nil)

	state := userState("u8", "bonjour")
	state.Language = "fr"
	ctrl.Run(context.Background(), state)

	assert.Equal(t, "User prefers language: fr\nUser says:\nbonjour", llmStub.lastPrompt)
}

func TestSearchStageUnconfigured(t *testing.T) {
	stage := NewSearchStage(nil, 0, zap.NewNop())

	state := &State{SearchQuery: "anything"}
	stage.Run(context.Background(), state)

	require.Len(t, state.Resources, 1)
	assert.Equal(t, "Search not configured", state.Resources[0].Title)
	assert.NotEmpty(t, state.Resources[0].Snippet)
}

func TestSearchStageEmptyQuery(t *testing.T) {
	searchStub := &stubSearch{results: []search.Result{{Title: "x"}}}
	stage := NewSearchStage(searchStub, 0, zap.NewNop())

	state := &State{SearchQuery: ""}
	stage.Run(context.Background(), state)

	assert.NotNil(t, state.Resources)
	assert.Empty(t, state.Resources)
	assert.Equal(t, 0, searchStub.calls)
}

func TestSearchStageErrorReturnsEmptyList(t *testing.T) {
	searchStub := &stubSearch{err: errors.New("boom")}
	stage := NewSearchStage(searchStub, 0, zap.NewNop())

	state := &State{SearchQuery: "anxiety"}
	stage.Run(context.Background(), state)

	assert.NotNil(t, state.Resources)
	assert.Empty(t, state.Resources)
}

func TestSearchStageSnippetFallback(t *testing.T) {
	searchStub := &stubSearch{results: []search.Result{
		{Title: "a", Content: "from content", Snippet: "from snippet"},
		{Title: "b", Snippet: "from snippet"},
		{Title: "c"},
	}}
	stage := NewSearchStage(searchStub, 0, zap.NewNop())

	state := &State{SearchQuery: "q"}
	stage.Run(context.Background(), state)

	require.Len(t, state.Resources, 3)
	assert.Equal(t, "from content", state.Resources[0].Snippet)
	assert.Equal(t, "from snippet", state.Resources[1].Snippet)
	assert.Equal(t, "", state.Resources[2].Snippet)
}
