package llm

import "context"

// Options are the fixed decoding parameters applied to every generation.
type Options struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// Client generates free-form text for a prompt. The system instruction and
// decoding options are fixed when the client is constructed.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
