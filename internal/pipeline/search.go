package pipeline

import (
	"context"
	"time"

	"github.com/havenchat/haven/internal/domain"
	"github.com/havenchat/haven/internal/search"
	"go.uber.org/zap"
)

// MaxResources caps the ranked resource list returned to the caller
const MaxResources = 5

// SearchStage fetches web resources for the query produced by the router
// stage. Failures degrade to an empty list; an unconfigured collaborator is
// reported through a synthetic placeholder entry so the caller can tell
// "not configured" apart from "no results".
type SearchStage struct {
	search  search.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewSearchStage creates the resource-search stage. A nil client means the
// collaborator is not configured.
func NewSearchStage(client search.Client, timeout time.Duration, logger *zap.Logger) *SearchStage {
	return &SearchStage{search: client, timeout: timeout, logger: logger}
}

// Run populates state.Resources from the search collaborator
func (s *SearchStage) Run(ctx context.Context, state *State) {
	if s.search == nil {
		state.Resources = []domain.ResourceSummary{{
			Title:   "Search not configured",
			URL:     "https://docs.tavily.com/",
			Snippet: "Set TAVILY_API_KEY in your environment to enable resource search.",
		}}
		return
	}

	if state.SearchQuery == "" {
		state.Resources = []domain.ResourceSummary{}
		return
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	results, err := s.search.Search(ctx, state.SearchQuery, MaxResources)
	if err != nil {
		s.logger.Warn("search call failed, returning no resources",
			zap.String("user_id", state.UserID),
			zap.String("query", state.SearchQuery),
			zap.Error(err),
		)
		state.Resources = []domain.ResourceSummary{}
		return
	}

	if len(results) > MaxResources {
		results = results[:MaxResources]
	}

	resources := make([]domain.ResourceSummary, 0, len(results))
	for _, r := range results {
		snippet := r.Content
		if snippet == "" {
			snippet = r.Snippet
		}
		resources = append(resources, domain.ResourceSummary{
			Title:   r.Title,
			URL:     r.URL,
			Score:   r.Score,
			Snippet: snippet,
		})
	}
	state.Resources = resources
}
