package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/innov8-labs/innov8/internal/auth"
	"github.com/innov8-labs/innov8/internal/ratelimit"
	"github.com/innov8-labs/innov8/internal/storage"
	"github.com/innov8-labs/innov8/internal/validation"
)

// Server is the Innov8 HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	handlers   *Handlers
	logger     *slog.Logger
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServerConfig holds all dependencies and configuration for creating a Server.
// Optional fields (nil-safe): Limiter, UIFS.
type ServerConfig struct {
	// Required dependencies.
	Store     *storage.Store
	JWTMgr    *auth.JWTManager
	Validator *validation.Service
	Logger    *slog.Logger

	// Optional dependencies (nil = disabled).
	Limiter ratelimit.Limiter

	// HTTP server settings.
	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Version             string
	MaxRequestBodyBytes int64
	CORSAllowedOrigins  []string

	// Optional embedded assets.
	UIFS fs.FS // Embedded UI filesystem (SPA).
}

// New creates a new HTTP server with all routes configured.
func New(cfg ServerConfig) *Server {
	h := NewHandlers(HandlersDeps{
		Store:               cfg.Store,
		JWTMgr:              cfg.JWTMgr,
		Validator:           cfg.Validator,
		Logger:              cfg.Logger,
		Version:             cfg.Version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	// Request ID extractor for rate limit error responses.
	reqIDFunc := func(r *http.Request) string {
		return RequestIDFromContext(r.Context())
	}
	rl := ratelimit.Middleware(cfg.Limiter, ratelimit.IPKeyFunc, reqIDFunc)

	mux := http.NewServeMux()

	// Auth endpoints (no auth required, rate limited by IP).
	mux.Handle("POST /api/auth/register", rl(http.HandlerFunc(h.HandleRegister)))
	mux.Handle("POST /api/auth/login", rl(http.HandlerFunc(h.HandleLogin)))
	mux.Handle("GET /api/auth/verify", requireAuth(http.HandlerFunc(h.HandleVerify)))

	// Idea browsing (public).
	mux.Handle("GET /api/ideas", rl(http.HandlerFunc(h.HandleListIdeas)))
	mux.Handle("GET /api/ideas/{id}", rl(http.HandlerFunc(h.HandleGetIdea)))

	// Idea writes (authenticated, rate limited).
	mux.Handle("POST /api/ideas", rl(requireAuth(http.HandlerFunc(h.HandleCreateIdea))))
	mux.Handle("GET /api/ideas/mine", rl(requireAuth(http.HandlerFunc(h.HandleMyIdeas))))

	// Engagement (authenticated, rate limited).
	mux.Handle("POST /api/ideas/{id}/comments", rl(requireAuth(http.HandlerFunc(h.HandleAddComment))))
	mux.Handle("POST /api/ideas/{id}/rate", rl(requireAuth(http.HandlerFunc(h.HandleRateIdea))))
	mux.Handle("POST /api/ideas/{id}/like", rl(requireAuth(http.HandlerFunc(h.HandleToggleLike))))

	// AI validation (authenticated, rate limited; the upstream call is slow).
	mux.Handle("POST /api/ideas/{id}/validate", rl(requireAuth(http.HandlerFunc(h.HandleValidateIdea))))

	// Health and version (no auth, no rate limit).
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/version", h.HandleVersion)

	// SPA: serve the embedded UI at the root path.
	// Registered last so all API routes take priority via the mux's longest-match rule.
	if cfg.UIFS != nil {
		mux.Handle("/", newSPAHandler(cfg.UIFS))
		cfg.Logger.Info("ui enabled, serving SPA at /")
	}

	// Middleware chain (outermost executes first):
	// request ID → security headers → CORS → tracing → logging → auth → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = authMiddleware(cfg.JWTMgr, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = corsMiddleware(cfg.CORSAllowedOrigins, handler)
	handler = securityHeadersMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		handlers: h,
		logger:   cfg.Logger,
	}
}

// Handlers returns the underlying Handlers.
func (s *Server) Handlers() *Handlers {
	return s.handlers
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
