// Package ai provides the model backend abstraction and its Gemini
// implementation, including retry, circuit breaking, and prompt templates.
package ai

import (
	"context"
)

// TokenUsage captures token consumption for a single completion.
type TokenUsage struct {
	InputTokens  int32 `json:"input_tokens"`
	OutputTokens int32 `json:"output_tokens"`
	TotalTokens  int32 `json:"total_tokens"`
}

// ModelInfo describes the backend serving completions.
type ModelInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Backend is the minimal capability generative operations are built on:
// one prompt in, one completion out. Implementations own their transport
// concerns (retry, breaker, timeouts); callers own interpretation of the
// completion text.
type Backend interface {
	// Complete submits a prompt and returns the raw completion text.
	// Temperature overrides the backend default when >= 0.
	Complete(ctx context.Context, prompt string, temperature float32) (string, *TokenUsage, error)

	// Info reports the provider and model behind this backend.
	Info() ModelInfo

	// Close releases any held resources.
	Close() error
}
