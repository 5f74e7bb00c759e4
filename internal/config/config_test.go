package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyOperationDefaults(t *testing.T) {
	cfg := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			APIKey:      "global-key",
			MaxRetries:  3,
			Temperature: 0.7,
		},
	}

	op := cfg.GetParseConfig()
	if op.Provider != "gemini" || op.Model != "gemini-2.0-flash" {
		t.Errorf("global fallback not applied: %+v", op)
	}
	if op.APIKey != "global-key" {
		t.Errorf("APIKey = %q, want global fallback", op.APIKey)
	}
	if op.Timeout == nil || *op.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want global fallback", op.Timeout)
	}
	if op.MaxRetries == nil || *op.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want global fallback", op.MaxRetries)
	}
	if op.Temperature == nil || *op.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want global fallback", op.Temperature)
	}
}

func TestOperationOverridesWin(t *testing.T) {
	timeout := 10 * time.Second
	retries := 1
	temp := float32(0.1)
	cfg := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			APIKey:      "global-key",
			MaxRetries:  3,
			Temperature: 0.7,
			Optimize: OperationAIConfig{
				Model:       "gemini-2.5-pro",
				Timeout:     &timeout,
				APIKey:      "op-key",
				MaxRetries:  &retries,
				Temperature: &temp,
			},
		},
	}

	op := cfg.GetOptimizeConfig()
	if op.Model != "gemini-2.5-pro" || op.APIKey != "op-key" {
		t.Errorf("operation overrides lost: %+v", op)
	}
	if *op.Timeout != timeout || *op.MaxRetries != retries || *op.Temperature != temp {
		t.Errorf("operation pointer overrides lost: %+v", op)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AI: AIConfig{APIKey: "key", Timeout: time.Minute},
			Server: ServerConfig{
				Port: "8080",
				TLS:  TLSConfig{Mode: "disabled"},
			},
			App: AppConfig{
				DefaultFormat:    "json",
				SupportedFormats: []string{"json", "text", "markdown"},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.AI.APIKey = "" }},
		{"zero timeout", func(c *Config) { c.AI.Timeout = 0 }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"unsupported default format", func(c *Config) { c.App.DefaultFormat = "yaml" }},
		{"bad tls mode", func(c *Config) { c.Server.TLS.Mode = "mutual" }},
		{"server mode without certs", func(c *Config) { c.Server.TLS.Mode = "server" }},
		{"bad tls version", func(c *Config) {
			c.Server.TLS.Mode = "server"
			c.Server.TLS.CertFile = "cert.pem"
			c.Server.TLS.KeyFile = "key.pem"
			c.Server.TLS.MinVersion = "1.0"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadPromptFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parse.txt")
	if err := os.WriteFile(path, []byte("custom parse prompt %s"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	cfg.AI.Parse.PromptFile = path
	if err := cfg.loadPromptFiles(); err != nil {
		t.Fatalf("loadPromptFiles() error = %v", err)
	}
	if cfg.AI.Parse.Prompt != "custom parse prompt %s" {
		t.Errorf("Prompt = %q", cfg.AI.Parse.Prompt)
	}
}

func TestLoadPromptFilesMissing(t *testing.T) {
	cfg := &Config{}
	cfg.AI.Chat.PromptFile = filepath.Join(t.TempDir(), "nope.txt")
	if err := cfg.loadPromptFiles(); err == nil {
		t.Error("expected error for missing prompt file")
	}
}

func TestLoadPromptFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	cfg.AI.Optimize.PromptFile = path
	if err := cfg.loadPromptFiles(); err == nil {
		t.Error("expected error for empty prompt file")
	}
}

func TestApplyFallbacksAPIKeysEnv(t *testing.T) {
	t.Setenv("RESUMEFORGE_SERVER_APIKEYS", "key-a, key-b ,key-c")

	cfg := &Config{}
	cfg.applyFallbacks()

	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Server.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
	}
	for i := range want {
		if cfg.Server.APIKeys[i] != want[i] {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], want[i])
		}
	}
}

func TestApplyGeminiKey(t *testing.T) {
	cfg := &Config{}
	cfg.AI.Analyze.APIKey = "explicit"

	applyGeminiKey(cfg, "vault-key")

	if cfg.AI.APIKey != "vault-key" || cfg.AI.Parse.APIKey != "vault-key" {
		t.Errorf("vault key not applied: %+v", cfg.AI)
	}
	if cfg.AI.Analyze.APIKey != "explicit" {
		t.Errorf("explicit operation key overwritten: %q", cfg.AI.Analyze.APIKey)
	}
}
