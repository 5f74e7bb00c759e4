package ai

import (
	"context"
	"crypto/rand"
	goerrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
)

// GeminiBackend implements Backend on the Gemini API. One backend serves one
// operation (parse, analyze, optimize, chat), carrying that operation's
// timeout, retry, and breaker configuration.
type GeminiBackend struct {
	client    *genai.Client
	cfg       *config.OperationAIConfig
	operation string
	breaker   *CompletionBreaker
	logger    *errors.Logger
}

var _ Backend = (*GeminiBackend)(nil)

// NewGeminiBackend creates a Gemini backend for a specific operation.
func NewGeminiBackend(cfg *config.OperationAIConfig, operation string, logger *errors.Logger) (*GeminiBackend, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiBackend{
		client:    client,
		cfg:       cfg,
		operation: operation,
		breaker:   NewCompletionBreaker(operation, cfg, logger),
		logger:    logger,
	}, nil
}

// Complete submits the prompt and returns the completion text. The call is
// wrapped in the operation's circuit breaker and retried with exponential
// backoff on retryable errors.
func (g *GeminiBackend) Complete(ctx context.Context, prompt string, temperature float32) (string, *TokenUsage, error) {
	tracer := otel.Tracer("resumeforge.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+g.operation)
	defer span.End()

	if temperature < 0 {
		temperature = *g.cfg.Temperature
	}
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.cfg.Model),
		attribute.Float64("ai.temperature", float64(temperature)),
	)

	genaiConfig := &genai.GenerateContentConfig{}
	if temperature > 0 {
		genaiConfig.Temperature = &temperature
	}

	callCtx := ctx
	if g.cfg.Timeout != nil && *g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, *g.cfg.Timeout)
		defer cancel()
	}

	result, err := g.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(callCtx, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(callCtx, g.cfg.Model, genai.Text(prompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+g.operation, err)
	}

	usage := extractTokenUsage(result)
	if usage != nil {
		span.SetAttributes(
			attribute.Int("ai.tokens.input", int(usage.InputTokens)),
			attribute.Int("ai.tokens.output", int(usage.OutputTokens)),
			attribute.Int("ai.tokens.total", int(usage.TotalTokens)),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))

	return result.Text(), usage, nil
}

// Info implements Backend
func (g *GeminiBackend) Info() ModelInfo {
	return ModelInfo{Provider: g.cfg.Provider, Model: g.cfg.Model}
}

// BreakerStats returns the operation's circuit breaker statistics.
func (g *GeminiBackend) BreakerStats() map[string]any {
	return g.breaker.Stats()
}

// IsHealthy reports whether the operation's circuit breaker is closed.
func (g *GeminiBackend) IsHealthy() bool {
	return g.breaker.IsHealthy()
}

// Close implements Backend
func (g *GeminiBackend) Close() error {
	// The genai client holds no resources needing release in single-shot use.
	return nil
}

// executeWithRetry executes a completion with retry logic and exponential backoff
func (g *GeminiBackend) executeWithRetry(ctx context.Context, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", g.operation,
				"attempt", attempt,
				"max_retries", *g.cfg.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", g.operation,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", g.operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", g.operation,
		"total_attempts", *g.cfg.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", g.operation, *g.cfg.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection refused) are worth retrying.
	var netErr net.Error
	if goerrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if goerrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// extractTokenUsage extracts token usage information from a Gemini response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  usage.PromptTokenCount,
		OutputTokens: usage.CandidatesTokenCount,
		TotalTokens:  usage.TotalTokenCount,
	}
}
