package optimize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"resumeforge/internal/ai"
	"resumeforge/internal/errors"
	"resumeforge/internal/extract"
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
	return s.completion, &ai.TokenUsage{TotalTokens: 42}, nil
}

func (s *stubBackend) Info() ai.ModelInfo { return ai.ModelInfo{Provider: "stub", Model: "stub"} }
func (s *stubBackend) Close() error       { return nil }

func testLogger() *errors.Logger {
	return errors.NewLogger(slog.LevelError)
}

func sampleResume() types.ResumeRecord {
	return types.ResumeRecord{
		BasicInfo: types.BasicInfo{Name: "Ada Lovelace", Email: "ada@example.com"},
		Experiences: []types.Experience{
			{Company: "Analytical Engines Ltd", Title: "Engineer"},
			{Company: "Babbage & Co", Title: "Analyst"},
		},
		Skills: []types.Skill{{Name: "Mathematics"}, {Name: "Programming"}},
	}
}

func newOptimizer(backend ai.Backend) *Optimizer {
	extractor := extract.NewExtractor(backend, testLogger(), extract.Options{})
	return NewOptimizer(backend, extractor, testLogger(), Options{})
}

func TestOptimizeReordersPerCompletion(t *testing.T) {
	backend := &stubBackend{
		completion: "```json\n{\"basic_info\": {\"name\": \"Ada Lovelace\"}, \"experiences\": [{\"company\": \"Babbage & Co\", \"title\": \"Analyst\"}, {\"company\": \"Analytical Engines Ltd\", \"title\": \"Engineer\"}]}\n```",
	}
	o := newOptimizer(backend)

	job := types.JobRequirements{JobTitle: "Analyst", RequiredSkills: []string{"analysis"}}
	out := o.Optimize(context.Background(), sampleResume(), "Analyst wanted", &job)
	if out.Degraded() {
		t.Fatalf("unexpected degraded outcome: %v (%v)", out.Reason, out.Err)
	}
	if len(out.Value.Experiences) != 2 || out.Value.Experiences[0].Company != "Babbage & Co" {
		t.Errorf("Experiences = %+v, want order from the completion", out.Value.Experiences)
	}
}

func TestOptimizeEmbedsResumeJobAndDescription(t *testing.T) {
	backend := &stubBackend{completion: "{}"}
	o := newOptimizer(backend)

	job := types.JobRequirements{JobTitle: "Staff Engineer"}
	o.Optimize(context.Background(), sampleResume(), "RAW-DESCRIPTION-MARKER", &job)

	for _, want := range []string{"Ada Lovelace", "Staff Engineer", "RAW-DESCRIPTION-MARKER"} {
		if !strings.Contains(backend.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestOptimizeBackendFailureReturnsOriginal(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("quota exceeded")}
	o := newOptimizer(backend)

	original := sampleResume()
	job := types.JobRequirements{JobTitle: "Engineer"}
	out := o.Optimize(context.Background(), original, "desc", &job)

	if !out.Degraded() || out.Reason != extract.DegradeBackend {
		t.Fatalf("Reason = %q, want %q", out.Reason, extract.DegradeBackend)
	}
	if out.Value.BasicInfo != original.BasicInfo || len(out.Value.Experiences) != len(original.Experiences) {
		t.Errorf("degraded outcome did not preserve the original resume: %+v", out.Value)
	}
	if out.Value.Experiences[0].Company != "Analytical Engines Ltd" {
		t.Errorf("original experience order not preserved: %+v", out.Value.Experiences)
	}
}

func TestOptimizeParseFailureReturnsOriginal(t *testing.T) {
	backend := &stubBackend{completion: "Here is your optimized resume:\n\nAda Lovelace, Engineer..."}
	o := newOptimizer(backend)

	original := sampleResume()
	job := types.JobRequirements{JobTitle: "Engineer"}
	out := o.Optimize(context.Background(), original, "desc", &job)

	if !out.Degraded() || out.Reason != extract.DegradeExtraction {
		t.Fatalf("Reason = %q, want %q", out.Reason, extract.DegradeExtraction)
	}
	if out.Value.BasicInfo.Name != "Ada Lovelace" || len(out.Value.Skills) != 2 {
		t.Errorf("degraded outcome did not preserve the original resume: %+v", out.Value)
	}
}

func TestOptimizeDerivesJobWhenNil(t *testing.T) {
	backend := &stubBackend{completion: "{\"basic_info\": {\"name\": \"Ada Lovelace\"}}"}
	o := newOptimizer(backend)

	out := o.Optimize(context.Background(), sampleResume(), "We are hiring a compiler engineer", nil)
	if out.Degraded() {
		t.Fatalf("unexpected degraded outcome: %v", out.Reason)
	}
	// The final prompt is the optimize prompt, not the job analysis prompt.
	if !strings.Contains(backend.lastPrompt, "We are hiring a compiler engineer") {
		t.Errorf("prompt missing the raw description")
	}
}
