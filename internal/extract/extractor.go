package extract

import (
	"context"

	"resumeforge/internal/ai"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// DegradeReason says why an outcome fell back to its degraded value.
type DegradeReason string

const (
	DegradeBackend    DegradeReason = "backend_unavailable"
	DegradeExtraction DegradeReason = "extraction_failed"
)

// Outcome is the result of a generative operation. Value is always usable:
// on success it carries the extracted record, on failure it carries the
// operation's documented fallback (zero record for extraction, original
// resume for optimization). Reason is empty on success.
type Outcome[T any] struct {
	Value  T
	Usage  *ai.TokenUsage
	Reason DegradeReason
	Err    error
}

// Degraded reports whether Value is a fallback rather than a model result.
func (o Outcome[T]) Degraded() bool {
	return o.Reason != ""
}

// Options tunes an Extractor. Zero values fall back to the package defaults.
type Options struct {
	ResumePrompt string
	JobPrompt    string
	Temperature  float32
}

// Extractor turns raw resume and job text into typed records via a backend.
// It never returns an error: failed calls produce a degraded Outcome with a
// zero-value record, so callers always have a record to work with.
type Extractor struct {
	backend      ai.Backend
	logger       *errors.Logger
	resumePrompt string
	jobPrompt    string
	temperature  float32
}

func NewExtractor(backend ai.Backend, logger *errors.Logger, opts Options) *Extractor {
	e := &Extractor{
		backend:      backend,
		logger:       logger,
		resumePrompt: opts.ResumePrompt,
		jobPrompt:    opts.JobPrompt,
		temperature:  opts.Temperature,
	}
	if e.resumePrompt == "" {
		e.resumePrompt = ai.DefaultResumeExtractionPrompt
	}
	if e.jobPrompt == "" {
		e.jobPrompt = ai.DefaultJobAnalysisPrompt
	}
	if e.temperature == 0 {
		e.temperature = 0.2
	}
	return e
}

// ExtractResume parses resume text into a ResumeRecord.
func (e *Extractor) ExtractResume(ctx context.Context, text string) Outcome[types.ResumeRecord] {
	return runExtraction[types.ResumeRecord](ctx, e, "extract_resume", ai.BuildPrompt(e.resumePrompt, text))
}

// ExtractJob parses a job posting into JobRequirements.
func (e *Extractor) ExtractJob(ctx context.Context, text string) Outcome[types.JobRequirements] {
	return runExtraction[types.JobRequirements](ctx, e, "extract_job", ai.BuildPrompt(e.jobPrompt, text))
}

// runExtraction is the shared completion-then-decode path. Backend failures
// and parse failures both degrade to the zero record; the reason and cause
// are kept on the Outcome for logging.
func runExtraction[T any](ctx context.Context, e *Extractor, operation, prompt string) Outcome[T] {
	var zero T

	completion, usage, err := e.backend.Complete(ctx, prompt, e.temperature)
	if err != nil {
		e.logger.LogError(
			errors.NewAIError(errors.ErrCodeBackendUnavailable, "backend completion failed", err),
			"extraction degraded to empty record",
			"operation", operation,
		)
		return Outcome[T]{Value: zero, Reason: DegradeBackend, Err: err}
	}

	var record T
	if err := Decode(completion, &record); err != nil {
		appErr := errors.NewExtractionError(errors.ErrCodeExtractionFailed, "completion was not valid JSON", err)
		if extErr, ok := err.(*ExtractionError); ok {
			appErr = appErr.WithContext("raw_completion", truncate(extErr.Raw, 512))
		}
		e.logger.LogError(appErr, "extraction degraded to empty record", "operation", operation)
		return Outcome[T]{Value: zero, Usage: usage, Reason: DegradeExtraction, Err: err}
	}

	return Outcome[T]{Value: record, Usage: usage}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
