package search

import "context"

// Result is one ranked item returned by the search collaborator
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
	Snippet string  `json:"snippet"`
}

// Client performs a ranked web search for a query
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
