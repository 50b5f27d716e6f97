package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/havenchat/haven/internal/domain"
)

// routerOutput is the structured object the language model is asked to emit
type routerOutput struct {
	AssistantReply string `json:"assistant_reply"`
	Intent         string `json:"intent"`
	SearchQuery    string `json:"search_query"`
}

const defaultReply = "I'm here with you."

// parseRouterOutput extracts a routerOutput from free-form model text. Parse
// failure never escapes; the caller always gets a usable object.
func parseRouterOutput(raw string) routerOutput {
	fallback := routerOutput{AssistantReply: defaultReply, Intent: string(domain.IntentUnknown)}

	text, ok := extractJSON(raw)
	if !ok {
		return fallback
	}

	var out routerOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return fallback
	}
	return out
}

// extractJSON locates a JSON object inside model text. Bare objects pass
// through; otherwise the span from the first '{' to the last '}' is used.
func extractJSON(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}") {
		return t, true
	}
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start != -1 && end != -1 && end > start {
		return t[start : end+1], true
	}
	return "", false
}

// normalizeIntent accepts only exact "chat" or "resources"; anything else
// becomes "unknown".
func normalizeIntent(intent string) domain.Intent {
	switch domain.Intent(intent) {
	case domain.IntentChat, domain.IntentResources:
		return domain.Intent(intent)
	default:
		return domain.IntentUnknown
	}
}
