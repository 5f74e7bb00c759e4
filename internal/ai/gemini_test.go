package ai

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", fmt.Errorf("boom"), false},
		{"rate limited", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"server error", &googleapi.Error{Code: http.StatusInternalServerError}, true},
		{"bad gateway", &googleapi.Error{Code: http.StatusBadGateway}, true},
		{"unavailable", &googleapi.Error{Code: http.StatusServiceUnavailable}, true},
		{"gateway timeout", &googleapi.Error{Code: http.StatusGatewayTimeout}, true},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest}, false},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, false},
		{"wrapped retryable", fmt.Errorf("call failed: %w", &googleapi.Error{Code: http.StatusServiceUnavailable}), true},
		{"network timeout", &net.DNSError{IsTimeout: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func breakerConfig(enabled bool) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestCompletionBreakerDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	cb := NewCompletionBreaker("parse", breakerConfig(false), logger)
	if cb != nil {
		t.Fatal("disabled breaker should be nil")
	}

	// Nil breaker passes calls through.
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil || !called {
		t.Errorf("nil breaker did not pass through: called=%v err=%v", called, err)
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
	if stats := cb.Stats(); stats["enabled"] != false {
		t.Errorf("stats = %v", stats)
	}
}

func TestCompletionBreakerTripsOnFailures(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	cb := NewCompletionBreaker("parse", breakerConfig(true), logger)
	if cb == nil {
		t.Fatal("enabled breaker should not be nil")
	}

	failing := func() (*genai.GenerateContentResponse, error) {
		return nil, fmt.Errorf("backend down")
	}
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(failing)
	}

	if cb.IsHealthy() {
		t.Error("breaker should have opened after repeated failures")
	}
	if stats := cb.Stats(); stats["enabled"] != true {
		t.Errorf("stats = %v", stats)
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("resume: %s job: %s", "A", "B")
	if got != "resume: A job: B" {
		t.Errorf("BuildPrompt() = %q", got)
	}
}
