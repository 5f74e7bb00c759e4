package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"resumeforge/internal/ai"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

type stubBackend struct {
	completion string
	err        error
	lastPrompt string
}

func (s *stubBackend) Complete(_ context.Context, prompt string, _ float32) (string, *ai.TokenUsage, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", nil, s.err
	}
	return s.completion, nil, nil
}

func (s *stubBackend) Info() ai.ModelInfo { return ai.ModelInfo{Provider: "stub", Model: "stub"} }
func (s *stubBackend) Close() error       { return nil }

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

func TestAsk(t *testing.T) {
	backend := &stubBackend{completion: "  Ada worked at Analytical Engines Ltd.  "}
	a := NewAssistant(backend, testLogger(), Options{})

	resume := types.ResumeRecord{BasicInfo: types.BasicInfo{Name: "Ada Lovelace"}}
	answer, history, err := a.Ask(context.Background(), resume, nil, "Where did Ada work?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "Ada worked at Analytical Engines Ltd." {
		t.Errorf("answer = %q, want trimmed completion", answer)
	}
	if len(history) != 2 || history[0].Role != "user" || history[1].Role != "assistant" {
		t.Errorf("history = %+v, want user turn then assistant turn", history)
	}
	if !strings.Contains(backend.lastPrompt, "Ada Lovelace") {
		t.Errorf("prompt missing the resume content")
	}
	if !strings.Contains(backend.lastPrompt, "Where did Ada work?") {
		t.Errorf("prompt missing the question")
	}
}

func TestAskCarriesHistory(t *testing.T) {
	backend := &stubBackend{completion: "Yes."}
	a := NewAssistant(backend, testLogger(), Options{})

	prior := []types.ChatTurn{
		{Role: "user", Content: "Does she know Python?"},
		{Role: "assistant", Content: "The resume lists Python."},
	}
	_, history, err := a.Ask(context.Background(), types.ResumeRecord{}, prior, "Is that recent?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("history length = %d, want 4", len(history))
	}
	if !strings.Contains(backend.lastPrompt, "Does she know Python?") {
		t.Errorf("prompt missing prior turns")
	}
}

func TestAskTrimsOldHistory(t *testing.T) {
	backend := &stubBackend{completion: "ok"}
	a := NewAssistant(backend, testLogger(), Options{MaxHistory: 2})

	prior := []types.ChatTurn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}
	_, history, err := a.Ask(context.Background(), types.ResumeRecord{}, prior, "latest")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	// 2 kept prior turns + new user turn + assistant answer.
	if len(history) != 4 {
		t.Fatalf("history length = %d, want 4", len(history))
	}
	if strings.Contains(backend.lastPrompt, "first") {
		t.Errorf("oldest turn should have been dropped from the prompt")
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	a := NewAssistant(&stubBackend{}, testLogger(), Options{})

	_, _, err := a.Ask(context.Background(), types.ResumeRecord{}, nil, "   ")
	if err == nil {
		t.Fatal("expected validation error for empty question")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Type != errors.ErrorTypeValidation {
		t.Errorf("error = %v, want validation AppError", err)
	}
}

func TestAskBackendFailure(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("unavailable")}
	a := NewAssistant(backend, testLogger(), Options{})

	prior := []types.ChatTurn{{Role: "user", Content: "hi"}}
	_, history, err := a.Ask(context.Background(), types.ResumeRecord{}, prior, "question")
	if err == nil {
		t.Fatal("expected error from backend failure")
	}
	if len(history) != 1 {
		t.Errorf("history should be unchanged on failure, got %+v", history)
	}
}
