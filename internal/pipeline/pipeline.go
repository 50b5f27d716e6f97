// Package pipeline implements the intent-routed two-stage conversation
// pipeline: a reply-and-classify stage that always runs, followed by a
// resource-search stage that runs only when the classified intent asks for
// resources.
package pipeline

import (
	"context"

	"github.com/havenchat/haven/internal/domain"
)

// node is a state of the pipeline's state machine
type node int

const (
	nodeRouting node = iota
	nodeSearching
	nodeEnd
)

// Controller drives one pipeline invocation to completion. The machine is
// START -> ROUTING -> (END | SEARCHING -> END): no cycles, no retries, at
// most two stage calls.
type Controller struct {
	router *RouterStage
	search *SearchStage
}

// NewController creates a pipeline controller
func NewController(router *RouterStage, search *SearchStage) *Controller {
	return &Controller{router: router, search: search}
}

// Run executes the pipeline on the given state. Stages never fail; the state
// at return is the pipeline's result.
func (c *Controller) Run(ctx context.Context, state *State) {
	for current := nodeRouting; current != nodeEnd; {
		switch current {
		case nodeRouting:
			c.router.Run(ctx, state)
			if state.Intent == domain.IntentResources {
				current = nodeSearching
			} else {
				current = nodeEnd
			}
		case nodeSearching:
			c.search.Run(ctx, state)
			current = nodeEnd
		}
	}
}
