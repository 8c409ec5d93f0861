package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/innov8-labs/innov8/internal/auth"
	"github.com/innov8-labs/innov8/internal/config"
	"github.com/innov8-labs/innov8/internal/ratelimit"
	"github.com/innov8-labs/innov8/internal/server"
	"github.com/innov8-labs/innov8/internal/storage"
	"github.com/innov8-labs/innov8/internal/telemetry"
	"github.com/innov8-labs/innov8/internal/validation"
	"github.com/innov8-labs/innov8/migrations"
	"github.com/innov8-labs/innov8/web"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	seed := flag.Bool("seed", false, "load demo accounts and ideas, then continue serving")
	flag.Parse()

	level := slog.LevelInfo
	if os.Getenv("INNOV8_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, *seed); err != nil {
		slog.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger, seed bool) error {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("innov8 starting", "version", version, "port", cfg.Port)

	// Initialize OpenTelemetry.
	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	// Open database and apply migrations. RunMigrations tracks applied files
	// in schema_migrations and skips duplicates, so errors here indicate real
	// failures (not "already exists").
	store, err := storage.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.RunMigrations(ctx, migrations.FS); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if seed {
		if err := seedDemoData(ctx, store, logger); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// Create JWT manager.
	jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTExpiration)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	// Create validation service.
	validator := validation.NewService(newValidationProvider(cfg, logger), cfg.ValidationTimeout, logger)

	// Load embedded UI filesystem (non-nil only when built with -tags ui).
	uiFS, err := web.DistFS()
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}
	if uiFS != nil {
		logger.Info("ui: embedded SPA loaded")
	}

	// Create rate limiter (in-process token bucket keyed by client IP).
	limiter := ratelimit.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer func() { _ = limiter.Close() }()

	srv := server.New(server.ServerConfig{
		Store:               store,
		JWTMgr:              jwtMgr,
		Validator:           validator,
		Logger:              logger,
		Limiter:             limiter,
		Port:                cfg.Port,
		ReadTimeout:         cfg.ReadTimeout,
		WriteTimeout:        cfg.WriteTimeout,
		Version:             version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		UIFS:                uiFS,
	})

	// Start HTTP server in background.
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	slog.Info("innov8 shutting down")

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := srv.Shutdown(httpCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}

	slog.Info("innov8 stopped")
	return nil
}

// newValidationProvider creates a validation provider based on configuration.
// Provider selection: "openai", "stub", or "auto" (default). Auto mode uses
// OpenAI when a key is present, else the deterministic stub.
func newValidationProvider(cfg config.Config, logger *slog.Logger) validation.Provider {
	switch cfg.ValidationProvider {
	case "openai":
		logger.Info("validation provider: openai", "model", cfg.OpenAIModel)
		return validation.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	case "stub":
		logger.Info("validation provider: stub (deterministic reports)")
		return validation.NewStubProvider()

	case "auto":
		fallthrough
	default:
		if cfg.OpenAIAPIKey != "" {
			logger.Info("validation provider: openai (auto-detected)", "model", cfg.OpenAIModel)
			return validation.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		}
		logger.Info("validation provider: stub (no OPENAI_API_KEY)")
		return validation.NewStubProvider()
	}
}
