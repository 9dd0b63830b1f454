package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/domain/blog"
	"portfolio-api/internal/domain/contact"
	"portfolio-api/internal/domain/subscription"
	"portfolio-api/internal/infra/email"
	"portfolio-api/internal/infra/queue"
	"portfolio-api/internal/infra/ratelimit"
	"portfolio-api/internal/infra/store"
	"portfolio-api/internal/infra/template"
	"portfolio-api/internal/router"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "port", cfg.Server.Port, "mode", cfg.Server.Mode)

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	// Template Engine (contact and subscription emails are rendered inline)
	templatesDir := resolveTemplatesDir()
	tmplEngine, err := template.NewEngine(templatesDir)
	if err != nil {
		slog.Error("failed to initialize template engine", "error", err, "dir", templatesDir)
		os.Exit(1)
	}
	slog.Info("template engine initialized", "dir", templatesDir)

	// Resend client (email sends + audience contacts)
	resendClient := email.NewResendClient(cfg.Resend.APIKey)

	// Supabase Store (posts)
	postStore, err := store.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	if err != nil {
		slog.Error("failed to initialize supabase store", "error", err)
		os.Exit(1)
	}
	slog.Info("supabase store initialized")

	// Asynq Client (view beacon enqueuing)
	asynqClient := queue.NewClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	defer asynqClient.Close()
	viewEnqueuer := queue.NewViewEnqueuer(asynqClient, cfg.Queue.MaxRetry)
	slog.Info("asynq client initialized", "redis", cfg.Redis.Address)

	// Recipient Rate Limiter
	recipientLimiter := ratelimit.NewRedisRecipientLimiter(
		cfg.Redis.Address,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.RecipientRateLimit.MaxPerHour,
	)
	defer recipientLimiter.Close()
	slog.Info("recipient rate limiter initialized", "max_per_hour", cfg.RecipientRateLimit.MaxPerHour)

	// Services
	blogService := blog.NewService(postStore, viewEnqueuer)
	subscriptionService := subscription.NewService(
		resendClient,
		resendClient,
		tmplEngine,
		recipientLimiter,
		subscription.Config{
			AudienceID:  cfg.Resend.AudienceID,
			UpdatesFrom: cfg.Resend.UpdatesFrom,
			ReplyTo:     cfg.Resend.ContactEmail,
			SiteBaseURL: cfg.Site.BaseURL,
		},
	)
	contactService := contact.NewService(
		resendClient,
		tmplEngine,
		recipientLimiter,
		contact.Config{
			From:      cfg.Resend.ContactFrom,
			Recipient: cfg.Resend.ContactEmail,
		},
	)

	// Handlers
	blogHandler := blog.NewHandler(blogService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	contactHandler := contact.NewHandler(contactService)

	// Router
	r := router.New(cfg, blogHandler, subscriptionHandler, contactHandler)

	// ==========================================
	// HTTP Server with Graceful Shutdown
	// ==========================================

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// resolveTemplatesDir finds the templates directory.
func resolveTemplatesDir() string {
	// Check if running in Docker (production)
	if _, err := os.Stat("/app/templates"); err == nil {
		return "/app/templates"
	}

	// Development: resolve relative to the source file location
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "internal/infra/template/templates"
	}

	// Navigate from cmd/server/main.go to internal/infra/template/templates
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	return filepath.Join(projectRoot, "internal", "infra", "template", "templates")
}
