package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/havenchat/haven/internal/config"
)

const defaultBaseURL = "https://api.tavily.com"

// TavilyClient calls the Tavily search REST API
type TavilyClient struct {
	apiKey     string
	baseURL    string
	depth      string
	httpClient *http.Client
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Results []Result `json:"results"`
}

// NewTavily creates a Tavily client
func NewTavily(apiKey, baseURL, depth string) *TavilyClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if depth == "" {
		depth = "basic"
	}
	return &TavilyClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		depth:      depth,
		httpClient: &http.Client{},
	}
}

// NewClientFromConfig returns a Tavily client, or nil when no credential is
// configured so callers can distinguish "not configured" from "no results".
func NewClientFromConfig(cfg config.SearchConfig) Client {
	if cfg.APIKey == "" {
		return nil
	}
	return NewTavily(cfg.APIKey, cfg.BaseURL, cfg.Depth)
}

// Search runs one search with answer synthesis disabled
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:        c.apiKey,
		Query:         query,
		MaxResults:    maxResults,
		SearchDepth:   c.depth,
		IncludeAnswer: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, msg)
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return out.Results, nil
}
