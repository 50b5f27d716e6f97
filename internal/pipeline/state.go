package pipeline

import "github.com/havenchat/haven/internal/domain"

// State is the value threaded through the pipeline for one turn. History is
// borrowed from the session and appended in place; the orchestrator writes it
// back after the run.
type State struct {
	UserID      string
	History     []domain.Message
	Language    string
	Intent      domain.Intent
	SearchQuery string
	Resources   []domain.ResourceSummary
}
