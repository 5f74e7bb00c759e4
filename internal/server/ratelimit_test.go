package server

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"resumeforge/internal/errors"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(60, 3, errors.NewLogger(slog.LevelError))
	defer limiter.Close()

	// Burst capacity allows the first three immediately
	for i := range 3 {
		if !limiter.Allow("client-1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}

	// Fourth request exceeds the bucket
	if limiter.Allow("client-1") {
		t.Error("request beyond burst capacity should be denied")
	}

	// Another key gets its own bucket
	if !limiter.Allow("client-2") {
		t.Error("independent key should have its own limiter")
	}
}

func TestRateLimiterStats(t *testing.T) {
	limiter := NewRateLimiter(120, 5, errors.NewLogger(slog.LevelError))
	defer limiter.Close()

	limiter.Allow("a")
	limiter.Allow("b")

	stats := limiter.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		bearer   string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{"api key header", "key123", "", true, true, "api:key123"},
		{"bearer fallback", "", "key456", true, true, "api:key456"},
		{"ip fallback when no key", "", "", true, true, "ip:192.0.2.1"},
		{"ip only", "key123", "", false, true, "ip:192.0.2.1"},
		{"nothing enabled", "key123", "", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/parse", nil)
			r.RemoteAddr = "192.0.2.1:1234"
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", "Bearer "+tt.bearer)
			}

			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"remote addr", "203.0.113.7:4321", "", "", "203.0.113.7"},
		{"x-forwarded-for wins", "203.0.113.7:4321", "198.51.100.9, 10.0.0.1", "", "198.51.100.9"},
		{"x-real-ip", "203.0.113.7:4321", "", "198.51.100.10", "198.51.100.10"},
		{"invalid xff falls through", "203.0.113.7:4321", "not-an-ip", "", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
