package server

import (
	"time"

	"resumeforge/internal/ai"
	"resumeforge/internal/chat"
	"resumeforge/internal/config"
	resumeforgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/optimize"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

// ParseRequest carries raw resume text for structured extraction.
type ParseRequest struct {
	ResumeText string `json:"resumeText"`
	SessionID  string `json:"sessionId,omitempty"`
}

// AnalyzeRequest carries a raw job description for requirement analysis.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription"`
	SessionID      string `json:"sessionId,omitempty"`
}

// MatchRequest computes a skill match report. Resume and job may be passed
// inline or resolved from a stored session.
type MatchRequest struct {
	SessionID string                  `json:"sessionId,omitempty"`
	Resume    *types.ResumeRecord    `json:"resume,omitempty"`
	Job       *types.JobRequirements `json:"job,omitempty"`
}

// OptimizeRequest rewrites a resume toward a job description.
type OptimizeRequest struct {
	SessionID      string                  `json:"sessionId,omitempty"`
	Resume         *types.ResumeRecord    `json:"resume,omitempty"`
	JobDescription string                  `json:"jobDescription"`
	Job            *types.JobRequirements `json:"job,omitempty"`
}

// ChatRequest asks a question about the resume stored under a session.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

// ParseResponse is the /parse result. Degraded means the resume is the empty
// fallback record rather than a model extraction.
type ParseResponse struct {
	SessionID string             `json:"sessionId"`
	Resume    types.ResumeRecord `json:"resume"`
	Degraded  bool               `json:"degraded"`
	Reason    string             `json:"reason,omitempty"`
}

// AnalyzeResponse is the /analyze result.
type AnalyzeResponse struct {
	SessionID string                 `json:"sessionId"`
	Job       types.JobRequirements `json:"job"`
	Degraded  bool                   `json:"degraded"`
	Reason    string                 `json:"reason,omitempty"`
}

// MatchResponse is the /match result.
type MatchResponse struct {
	Report types.MatchReport `json:"report"`
}

// OptimizeResponse is the /optimize result. Degraded means the resume is the
// caller's original record, returned unchanged.
type OptimizeResponse struct {
	SessionID string             `json:"sessionId,omitempty"`
	Resume    types.ResumeRecord `json:"resume"`
	Degraded  bool               `json:"degraded"`
	Reason    string             `json:"reason,omitempty"`
}

// ChatResponse is the /chat result with the updated conversation.
type ChatResponse struct {
	SessionID string            `json:"sessionId"`
	Answer    string            `json:"answer"`
	History   []types.ChatTurn `json:"history"`
}

// ErrorResponse is the standard error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BackendHealth is what the health endpoint needs from an AI backend.
type BackendHealth interface {
	Info() ai.ModelInfo
	IsHealthy() bool
	BreakerStats() map[string]any
}

// Services bundles the domain collaborators behind the HTTP handlers. Tests
// inject stub-backed instances here.
type Services struct {
	ParseExtractor   *extract.Extractor
	AnalyzeExtractor *extract.Extractor
	Optimizer        *optimize.Optimizer
	Assistant        *chat.Assistant
	Store            *store.SessionStore

	// Per-operation backends, kept for health reporting
	Backends map[string]BackendHealth
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Domain services (built at Start when nil)
	Services *Services

	// Logger
	Logger *resumeforgeErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumeforgeErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}

// buildServices wires the per-operation Gemini backends into the domain
// services. Each operation gets its own backend so breaker state, timeouts,
// and retry budgets stay independent.
func (s *Server) buildServices() error {
	parseCfg := s.AppConfig.GetParseConfig()
	analyzeCfg := s.AppConfig.GetAnalyzeConfig()
	optimizeCfg := s.AppConfig.GetOptimizeConfig()
	chatCfg := s.AppConfig.GetChatConfig()

	parseBackend, err := ai.NewGeminiBackend(&parseCfg, "parse", s.Logger)
	if err != nil {
		return err
	}
	analyzeBackend, err := ai.NewGeminiBackend(&analyzeCfg, "analyze", s.Logger)
	if err != nil {
		return err
	}
	optimizeBackend, err := ai.NewGeminiBackend(&optimizeCfg, "optimize", s.Logger)
	if err != nil {
		return err
	}
	chatBackend, err := ai.NewGeminiBackend(&chatCfg, "chat", s.Logger)
	if err != nil {
		return err
	}

	parseExtractor := extract.NewExtractor(parseBackend, s.Logger, extract.Options{
		ResumePrompt: parseCfg.Prompt,
		Temperature:  *parseCfg.Temperature,
	})
	analyzeExtractor := extract.NewExtractor(analyzeBackend, s.Logger, extract.Options{
		JobPrompt:   analyzeCfg.Prompt,
		Temperature: *analyzeCfg.Temperature,
	})

	s.Services = &Services{
		ParseExtractor:   parseExtractor,
		AnalyzeExtractor: analyzeExtractor,
		Optimizer: optimize.NewOptimizer(optimizeBackend, analyzeExtractor, s.Logger, optimize.Options{
			Prompt:      optimizeCfg.Prompt,
			Temperature: *optimizeCfg.Temperature,
		}),
		Assistant: chat.NewAssistant(chatBackend, s.Logger, chat.Options{
			Prompt:      chatCfg.Prompt,
			Temperature: *chatCfg.Temperature,
			MaxHistory:  s.AppConfig.App.ChatMaxHistory,
		}),
		Store: store.NewSessionStore(),
		Backends: map[string]BackendHealth{
			"parse":    parseBackend,
			"analyze":  analyzeBackend,
			"optimize": optimizeBackend,
			"chat":     chatBackend,
		},
	}
	return nil
}
