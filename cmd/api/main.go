package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	appai "github.com/bryanwahyu/truthcheck/internal/application/ai"
	"github.com/bryanwahyu/truthcheck/internal/config"
	"github.com/bryanwahyu/truthcheck/internal/infra/ai/openai"
	"github.com/bryanwahyu/truthcheck/internal/infra/httpserver"
	"github.com/bryanwahyu/truthcheck/internal/middleware"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Logging.Level, cfg.Logging.Format)

	if err := middleware.ValidateModelID(cfg.Model.ID); err != nil {
		slog.Error("invalid model id", "error", err)
		os.Exit(1)
	}

	// init model client
	temperature := cfg.Model.Temperature
	client := openai.NewClient(openai.Options{
		BaseURL:     cfg.Model.BaseURL,
		Temperature: &temperature,
		MaxTokens:   cfg.Model.MaxTokens,
		Timeout:     cfg.Model.Timeout,
	})

	// init service
	svc := appai.NewService(client, cfg.Model.ID, appai.WithMaxInputBytes(cfg.Server.MaxInputBytes))

	// capacity 0 turns rate limiting off
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
		defer limiter.Close()
	}

	// init router
	page := httpserver.NewPage(cfg.UI.Title, cfg.UI.Icon, cfg.UI.Tagline, cfg.Model.ID)
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, page, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    limiter,
		MaxBodyBytes:   int64(cfg.Server.MaxInputBytes) * 4,
		TrustProxy:     cfg.Server.TrustProxy,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// no write timeout: the page waits on the model, which has no local deadline
		IdleTimeout: 60 * time.Second,
	}

	if err := run(srv, cfg.Model.ID, cfg.Model.BaseURL); err != nil {
		slog.Error("server error", "error", err)
		if limiter != nil {
			limiter.Close()
		}
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM and then shuts down gracefully.
// A listener failure is returned instead of exiting, so main's cleanup runs.
func run(srv *http.Server, model, baseURL string) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "model", model, "base_url", baseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	return nil
}

// setupLogger installs the default slog logger. Unknown levels fall back to info.
func setupLogger(level, format string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
