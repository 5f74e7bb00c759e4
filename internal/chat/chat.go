// Package chat answers free-form questions about a stored resume.
// Completions are returned as plain text; unlike extraction there is no
// JSON contract to enforce, so backend errors propagate to the caller.
package chat

import (
	"context"
	"encoding/json"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// Options tunes an Assistant. Zero values fall back to the package defaults.
type Options struct {
	Prompt      string
	Temperature float32
	MaxHistory  int
}

// Assistant holds one resume conversation's dependencies.
type Assistant struct {
	backend     ai.Backend
	logger      *errors.Logger
	prompt      string
	temperature float32
	maxHistory  int
}

func NewAssistant(backend ai.Backend, logger *errors.Logger, opts Options) *Assistant {
	a := &Assistant{
		backend:     backend,
		logger:      logger,
		prompt:      opts.Prompt,
		temperature: opts.Temperature,
		maxHistory:  opts.MaxHistory,
	}
	if a.prompt == "" {
		a.prompt = ai.DefaultChatPrompt
	}
	if a.temperature == 0 {
		a.temperature = 0.7
	}
	if a.maxHistory == 0 {
		a.maxHistory = 20
	}
	return a
}

// Ask answers question against resume, given the prior turns. It returns the
// answer and the updated history (prior turns plus the new user/assistant
// pair). History beyond the configured window is dropped oldest-first.
func (a *Assistant) Ask(ctx context.Context, resume types.ResumeRecord, history []types.ChatTurn, question string) (string, []types.ChatTurn, error) {
	if strings.TrimSpace(question) == "" {
		return "", history, errors.NewValidationError(errors.ErrCodeInvalidRequest, "question is empty", nil)
	}

	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return "", history, errors.NewInternalError(errors.ErrCodeInvalidFormat, "resume serialization failed", err)
	}

	turns := append(trimHistory(history, a.maxHistory), types.ChatTurn{Role: "user", Content: question})
	prompt := ai.BuildPrompt(a.prompt, string(resumeJSON), renderTurns(turns))

	answer, _, err := a.backend.Complete(ctx, prompt, a.temperature)
	if err != nil {
		return "", history, errors.NewAIError(errors.ErrCodeBackendUnavailable, "chat completion failed", err)
	}

	answer = strings.TrimSpace(answer)
	turns = append(turns, types.ChatTurn{Role: "assistant", Content: answer})
	return answer, turns, nil
}

func trimHistory(history []types.ChatTurn, max int) []types.ChatTurn {
	if len(history) <= max {
		return append([]types.ChatTurn(nil), history...)
	}
	return append([]types.ChatTurn(nil), history[len(history)-max:]...)
}

func renderTurns(turns []types.ChatTurn) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return b.String()
}
