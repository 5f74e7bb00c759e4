package server

import (
	"context"
	"net/http"
	"strings"

	resumeforgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/match"
	"resumeforge/internal/observability"
	"resumeforge/internal/store"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createParseHandler extracts a structured resume from raw text
func (s *Server) createParseHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.ResumeText) == "" {
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "parse"),
		)

		metrics := om.Metrics()
		var outcome extract.Outcome[types.ResumeRecord]
		// The outcome is always usable; the tracking error mirrors outcome.Err
		// and is already folded into the degraded flag.
		_ = metrics.TrackAIOperation(ctx, tracer, "parse", func(ctx context.Context) *observability.AIResult {
			outcome = s.Services.ParseExtractor.ExtractResume(ctx, req.ResumeText)
			return &observability.AIResult{Error: outcome.Err, TokenUsage: outcome.Usage, Degraded: outcome.Degraded()}
		})

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = store.NewSessionID()
		}
		if !outcome.Degraded() {
			s.Services.Store.SaveResume(sessionID, outcome.Value)
		}

		metrics.RecordOperation(ctx, "parse", !outcome.Degraded())
		span.SetAttributes(attribute.Bool("degraded", outcome.Degraded()))

		writeJSONResponse(w, ParseResponse{
			SessionID: sessionID,
			Resume:    outcome.Value,
			Degraded:  outcome.Degraded(),
			Reason:    string(outcome.Reason),
		})
	}
}

// createAnalyzeHandler extracts job requirements from a raw description
func (s *Server) createAnalyzeHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.Metrics()
		var outcome extract.Outcome[types.JobRequirements]
		_ = metrics.TrackAIOperation(ctx, tracer, "analyze", func(ctx context.Context) *observability.AIResult {
			outcome = s.Services.AnalyzeExtractor.ExtractJob(ctx, req.JobDescription)
			return &observability.AIResult{Error: outcome.Err, TokenUsage: outcome.Usage, Degraded: outcome.Degraded()}
		})

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = store.NewSessionID()
		}
		if !outcome.Degraded() {
			s.Services.Store.SaveJob(sessionID, outcome.Value)
		}

		metrics.RecordOperation(ctx, "analyze", !outcome.Degraded())
		span.SetAttributes(attribute.Bool("degraded", outcome.Degraded()))

		writeJSONResponse(w, AnalyzeResponse{
			SessionID: sessionID,
			Job:       outcome.Value,
			Degraded:  outcome.Degraded(),
			Reason:    string(outcome.Reason),
		})
	}
}

// createMatchHandler computes a skill match report from stored or inline records
func (s *Server) createMatchHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resume, job, err := s.resolveMatchInputs(req)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		report := match.Resume(resume, job)

		metrics := om.Metrics()
		metrics.RecordOperation(ctx, "match", true,
			attribute.Int("matching_skills", len(report.MatchingSkills)),
			attribute.Int("missing_skills", len(report.MissingSkills)))

		span.SetAttributes(
			attribute.Int("matching_skills", len(report.MatchingSkills)),
			attribute.Int("missing_skills", len(report.MissingSkills)),
		)

		writeJSONResponse(w, MatchResponse{Report: report})
	}
}

// resolveMatchInputs prefers inline records and falls back to the session.
func (s *Server) resolveMatchInputs(req MatchRequest) (types.ResumeRecord, types.JobRequirements, error) {
	var resume types.ResumeRecord
	var job types.JobRequirements

	switch {
	case req.Resume != nil:
		resume = *req.Resume
	case req.SessionID != "":
		stored, err := s.Services.Store.GetResume(req.SessionID)
		if err != nil {
			return resume, job, err
		}
		resume = stored
	default:
		return resume, job, resumeforgeErrors.NewValidationError(resumeforgeErrors.ErrCodeInvalidRequest,
			"resume or sessionId is required", nil)
	}

	switch {
	case req.Job != nil:
		job = *req.Job
	case req.SessionID != "":
		stored, err := s.Services.Store.GetJob(req.SessionID)
		if err != nil {
			return resume, job, err
		}
		job = stored
	default:
		return resume, job, resumeforgeErrors.NewValidationError(resumeforgeErrors.ErrCodeInvalidRequest,
			"job or sessionId is required", nil)
	}

	return resume, job, nil
}

// createOptimizeHandler rewrites a resume toward a job description
func (s *Server) createOptimizeHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		var resume types.ResumeRecord
		switch {
		case req.Resume != nil:
			resume = *req.Resume
		case req.SessionID != "":
			stored, err := s.Services.Store.GetResume(req.SessionID)
			if err != nil {
				span.RecordError(err)
				writeAppError(w, err)
				return
			}
			resume = stored
		default:
			writeErrorResponse(w, "Missing resume", "resume or sessionId is required", http.StatusBadRequest)
			return
		}

		// Inline job wins; a stored one is next; otherwise the optimizer
		// derives requirements from the raw description.
		job := req.Job
		if job == nil && req.SessionID != "" {
			if stored, err := s.Services.Store.GetJob(req.SessionID); err == nil {
				job = &stored
			}
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "optimize"),
		)

		metrics := om.Metrics()
		var outcome extract.Outcome[types.ResumeRecord]
		_ = metrics.TrackAIOperation(ctx, tracer, "optimize", func(ctx context.Context) *observability.AIResult {
			outcome = s.Services.Optimizer.Optimize(ctx, resume, req.JobDescription, job)
			return &observability.AIResult{Error: outcome.Err, TokenUsage: outcome.Usage, Degraded: outcome.Degraded()}
		})

		metrics.RecordOperation(ctx, "optimize", !outcome.Degraded())
		span.SetAttributes(attribute.Bool("degraded", outcome.Degraded()))

		writeJSONResponse(w, OptimizeResponse{
			SessionID: req.SessionID,
			Resume:    outcome.Value,
			Degraded:  outcome.Degraded(),
			Reason:    string(outcome.Reason),
		})
	}
}

// createChatHandler answers a question about the session's stored resume
func (s *Server) createChatHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.chat")
		defer span.End()

		var req ChatRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			writeErrorResponse(w, "Missing session", "sessionId field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			writeErrorResponse(w, "Missing question", "question field is required", http.StatusBadRequest)
			return
		}

		resume, err := s.Services.Store.GetResume(req.SessionID)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		history := s.Services.Store.GetChat(req.SessionID)

		span.SetAttributes(
			attribute.Int("request.question_length", len(req.Question)),
			attribute.Int("history_turns", len(history)),
			attribute.String("operation", "chat"),
		)

		metrics := om.Metrics()
		var answer string
		var updated []types.ChatTurn
		trackErr := metrics.TrackAIOperation(ctx, tracer, "chat", func(ctx context.Context) *observability.AIResult {
			var askErr error
			answer, updated, askErr = s.Services.Assistant.Ask(ctx, resume, history, req.Question)
			return &observability.AIResult{Error: askErr}
		})

		metrics.RecordOperation(ctx, "chat", trackErr == nil)
		if trackErr != nil {
			span.RecordError(trackErr)
			writeAppError(w, trackErr)
			return
		}

		s.Services.Store.SaveChat(req.SessionID, updated)

		writeJSONResponse(w, ChatResponse{
			SessionID: req.SessionID,
			Answer:    answer,
			History:   updated,
		})
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.Manager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.Metrics().RecordRateLimitHit(r.Context(), r.URL.Path)
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
