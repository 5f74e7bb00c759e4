package observability

import (
	"context"
	"fmt"
	"time"

	"resumeforge/internal/ai"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Metrics holds all custom instruments. A zero Metrics value records nothing.
type Metrics struct {
	// AI backend instruments
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Business instruments
	ResumesParsed    metric.Int64Counter
	JobsAnalyzed     metric.Int64Counter
	MatchesComputed  metric.Int64Counter
	ResumesOptimized metric.Int64Counter
	ChatTurns        metric.Int64Counter

	// Infrastructure instruments
	RateLimitHits metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.AIProcessingTime, err = meter.Float64Histogram(
		"resumeforge_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI processing time metric: %w", err)
	}

	m.AIRequestCount, err = meter.Int64Counter(
		"resumeforge_ai_requests_total",
		metric.WithDescription("Total number of AI requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI request count metric: %w", err)
	}

	m.AIErrorCount, err = meter.Int64Counter(
		"resumeforge_ai_errors_total",
		metric.WithDescription("Total number of AI request errors"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI error count metric: %w", err)
	}

	m.AITokenUsage, err = meter.Int64Histogram(
		"resumeforge_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests by token type"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&m.ResumesParsed, "resumeforge_resumes_parsed_total", "Total number of resumes parsed"},
		{&m.JobsAnalyzed, "resumeforge_jobs_analyzed_total", "Total number of job descriptions analyzed"},
		{&m.MatchesComputed, "resumeforge_matches_computed_total", "Total number of skill match reports computed"},
		{&m.ResumesOptimized, "resumeforge_resumes_optimized_total", "Total number of resumes optimized"},
		{&m.ChatTurns, "resumeforge_chat_turns_total", "Total number of chat turns answered"},
		{&m.RateLimitHits, "resumeforge_rate_limit_hits_total", "Total number of rate limited requests"},
	}
	for _, c := range counters {
		*c.target, err = meter.Int64Counter(c.name, metric.WithDescription(c.description))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s metric: %w", c.name, err)
		}
	}

	return m, nil
}

// AIResult carries the outcome of an instrumented AI operation.
type AIResult struct {
	Error      error
	TokenUsage *ai.TokenUsage
	Degraded   bool
}

// TrackAIOperation wraps an AI operation with a span, duration, request and
// token usage metrics. The wrapped function's error is returned unchanged.
func (m *Metrics) TrackAIOperation(ctx context.Context, tracer oteltrace.Tracer, operation string, fn func(context.Context) *AIResult) error {
	ctx, span := tracer.Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	if result != nil && result.Degraded {
		attrs = append(attrs, attribute.Bool("degraded", true))
	}
	span.SetAttributes(attrs...)

	if m.AIProcessingTime != nil {
		m.AIProcessingTime.Record(ctx, duration, metric.WithAttributes(attrs...))
	}
	if m.AIRequestCount != nil {
		m.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if err != nil {
		span.RecordError(err)
		if m.AIErrorCount != nil {
			m.AIErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}

	m.recordTokenUsage(ctx, result, attrs, span)
	return err
}

func (m *Metrics) recordTokenUsage(ctx context.Context, result *AIResult, attrs []attribute.KeyValue, span oteltrace.Span) {
	if result == nil || result.TokenUsage == nil {
		return
	}

	usage := result.TokenUsage
	span.SetAttributes(
		attribute.Int("ai.tokens.input", int(usage.InputTokens)),
		attribute.Int("ai.tokens.output", int(usage.OutputTokens)),
		attribute.Int("ai.tokens.total", int(usage.TotalTokens)),
	)

	if m.AITokenUsage == nil {
		return
	}
	for _, tt := range []struct {
		tokenType string
		value     int32
	}{
		{"input", usage.InputTokens},
		{"output", usage.OutputTokens},
		{"total", usage.TotalTokens},
	} {
		tokenAttrs := append(attrs, attribute.String("token_type", tt.tokenType))
		m.AITokenUsage.Record(ctx, int64(tt.value), metric.WithAttributes(tokenAttrs...))
	}
}

// RecordOperation bumps the business counter for the given operation name.
func (m *Metrics) RecordOperation(ctx context.Context, operation string, success bool, attributes ...attribute.KeyValue) {
	attrs := append([]attribute.KeyValue{attribute.Bool("success", success)}, attributes...)

	var counter metric.Int64Counter
	switch operation {
	case "parse":
		counter = m.ResumesParsed
	case "analyze":
		counter = m.JobsAnalyzed
	case "match":
		counter = m.MatchesComputed
	case "optimize":
		counter = m.ResumesOptimized
	case "chat":
		counter = m.ChatTurns
	}
	if counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimitHit(ctx context.Context, limiterKind string) {
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(
			attribute.String("limiter", limiterKind),
		))
	}
}
