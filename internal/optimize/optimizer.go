// Package optimize rewrites a parsed resume toward a target job.
package optimize

import (
	"context"
	"encoding/json"

	"resumeforge/internal/ai"
	"resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/types"
)

// Options tunes an Optimizer. Zero values fall back to the package defaults.
type Options struct {
	Prompt      string
	Temperature float32
}

// Optimizer asks the backend to reorder, reword, and refocus a resume toward
// a job posting. The one hard guarantee: the caller's resume is never lost.
// Any failure returns the original record unchanged, flagged degraded.
type Optimizer struct {
	backend     ai.Backend
	extractor   *extract.Extractor
	logger      *errors.Logger
	prompt      string
	temperature float32
}

func NewOptimizer(backend ai.Backend, extractor *extract.Extractor, logger *errors.Logger, opts Options) *Optimizer {
	o := &Optimizer{
		backend:     backend,
		extractor:   extractor,
		logger:      logger,
		prompt:      opts.Prompt,
		temperature: opts.Temperature,
	}
	if o.prompt == "" {
		o.prompt = ai.DefaultOptimizePrompt
	}
	if o.temperature == 0 {
		o.temperature = 0.3
	}
	return o
}

// Optimize rewrites resume toward the job described by jobDescription.
// When job is nil the requirements are derived from the description first;
// a degraded derivation still proceeds with whatever was extracted, since
// the raw description is embedded in the prompt regardless.
func (o *Optimizer) Optimize(ctx context.Context, resume types.ResumeRecord, jobDescription string, job *types.JobRequirements) extract.Outcome[types.ResumeRecord] {
	if job == nil {
		derived := o.extractor.ExtractJob(ctx, jobDescription)
		job = &derived.Value
	}

	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		// Marshal of plain structs cannot realistically fail; treated as
		// an internal degradation rather than a panic path.
		o.logger.LogError(errors.NewInternalError(errors.ErrCodeInvalidFormat, "resume serialization failed", err),
			"optimization degraded to original resume")
		return extract.Outcome[types.ResumeRecord]{Value: resume, Reason: extract.DegradeExtraction, Err: err}
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		o.logger.LogError(errors.NewInternalError(errors.ErrCodeInvalidFormat, "job serialization failed", err),
			"optimization degraded to original resume")
		return extract.Outcome[types.ResumeRecord]{Value: resume, Reason: extract.DegradeExtraction, Err: err}
	}

	prompt := ai.BuildPrompt(o.prompt, string(resumeJSON), string(jobJSON), jobDescription)

	completion, usage, err := o.backend.Complete(ctx, prompt, o.temperature)
	if err != nil {
		o.logger.LogError(errors.NewAIError(errors.ErrCodeBackendUnavailable, "backend completion failed", err),
			"optimization degraded to original resume")
		return extract.Outcome[types.ResumeRecord]{Value: resume, Reason: extract.DegradeBackend, Err: err}
	}

	var optimized types.ResumeRecord
	if err := extract.Decode(completion, &optimized); err != nil {
		o.logger.LogError(errors.NewExtractionError(errors.ErrCodeExtractionFailed, "optimized resume was not valid JSON", err),
			"optimization degraded to original resume")
		return extract.Outcome[types.ResumeRecord]{Value: resume, Usage: usage, Reason: extract.DegradeExtraction, Err: err}
	}

	return extract.Outcome[types.ResumeRecord]{Value: optimized, Usage: usage}
}
