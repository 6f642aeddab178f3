package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-agency-backend/config"
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/mail"
	"go-agency-backend/pkg/ratelimit"
	"go-agency-backend/pkg/redis"
	"go-agency-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting agency backend", "port", cfg.Port, "env", cfg.Environment)

	if !config.Mail().IsConfigured() {
		logger.Log.Warn("Mail relay not fully configured - contact form sends will fail until SMTP_USERNAME, SMTP_PASSWORD and CONTACT_EMAIL_TO are set")
	}

	// 3. Setup Redis (optional; limiters fall back to in-memory)
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	var contactLimiter, globalLimiter ratelimit.Limiter
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "reason", err)
	}
	if client := redis.Client(); client != nil {
		contactLimiter = ratelimit.NewRedis(client, cfg.RateLimitContactLimit, window, "rl:contact:")
		globalLimiter = ratelimit.NewRedis(client, cfg.RateLimitGlobalThreshold, window, "rl:ip:")
	} else {
		contactLimiter = ratelimit.NewMemory(cfg.RateLimitContactLimit, window)
		globalLimiter = ratelimit.NewMemory(cfg.RateLimitGlobalThreshold, window)
	}
	defer redis.Close()

	// 4. Setup Validation
	validate := validator.New()
	validation.RegisterValidators(validate)

	// 5. Setup UseCases
	dispatcher := mail.NewService()
	contactUC := usecase.NewContactUsecase(dispatcher, contactLimiter, validate,
		time.Duration(cfg.DispatchTimeoutSeconds)*time.Second)
	healthUC := usecase.NewHealthUsecase(cfg)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:     contactUC,
		HealthUC:      healthUC,
		GlobalLimiter: globalLimiter,
		Config:        cfg,
	})

	// 7. Start Server. The write timeout is the outer budget around the
	// 25s dispatch race.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
