package llm

import "context"

// Request is a single-turn completion request. System sets the persona,
// Prompt carries the user content.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Provider generates text from a prompt.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
