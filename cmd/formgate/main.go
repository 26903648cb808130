package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/orbitlabs/formgate/internal/config"
	"github.com/orbitlabs/formgate/internal/handlers"
	"github.com/orbitlabs/formgate/internal/logging"
	"github.com/orbitlabs/formgate/internal/lookup"
	"github.com/orbitlabs/formgate/internal/notify"
	"github.com/orbitlabs/formgate/internal/ratelimit"
	"github.com/orbitlabs/formgate/internal/server"
	"github.com/orbitlabs/formgate/internal/service"
	"github.com/orbitlabs/formgate/internal/storeclient"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("formgate"))
	logging.SetDefault(logger)

	slog.Info("Starting formgate service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if cfg.Webhook.Secret == "" {
		slog.Warn("No webhook secret configured: signature verification is disabled and all senders are accepted")
	}

	// Rate limiter (optional, Redis-backed)
	var rateLimiter ratelimit.RateLimiter
	if cfg.Redis.Enabled && cfg.Ingestion.RateLimitEnabled {
		limiter, err := ratelimit.NewRedisRateLimiter(
			cfg.Redis.URL,
			cfg.Ingestion.RateLimitRequests,
			cfg.Ingestion.RateLimitWindow,
		)
		if err != nil {
			slog.Warn("Failed to initialize Redis rate limiter, continuing without rate limiting",
				slog.String("error", err.Error()))
			rateLimiter = &ratelimit.NoOpRateLimiter{}
		} else {
			rateLimiter = limiter
			slog.Info("Rate limiting enabled",
				slog.Int("requests", cfg.Ingestion.RateLimitRequests),
				slog.String("window", cfg.Ingestion.RateLimitWindow.String()),
			)
		}
	} else {
		rateLimiter = &ratelimit.NoOpRateLimiter{}
		slog.Info("Rate limiting disabled")
	}
	defer rateLimiter.Close()

	// Data API client and service type cache
	store := storeclient.New(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Timeout)
	serviceTypes := lookup.NewServiceTypes(store)

	// Notification channels: each enables itself only when configured
	chat := notify.NewChatChannel(cfg.Notify.SlackWebhookURL, cfg.Notify.Timeout)
	email := notify.NewEmailChannel(
		cfg.Notify.ResendAPIKey,
		cfg.Notify.ResendFromEmail,
		cfg.Notify.AdminEmail,
		cfg.Notify.Timeout,
	)
	dispatcher := notify.NewDispatcher(logger.Logger, chat, email)
	if chat == nil {
		slog.Info("Chat notifications disabled (no webhook URL configured)")
	}
	if email == nil {
		slog.Info("Email notifications disabled (missing API key, from-address or admin email)")
	}

	intake := service.NewIntake(cfg.Webhook.Secret, store, serviceTypes, dispatcher, logger)
	handler := handlers.NewWebhookHandler(intake, rateLimiter, logger)
	router := server.NewRouter(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("formgate listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server stopped")
}
