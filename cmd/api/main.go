package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-form-backend/config"
	_ "contact-form-backend/docs" // Important for Swagger
	v1 "contact-form-backend/internal/delivery/http/v1"
	"contact-form-backend/internal/usecase"
	"contact-form-backend/pkg/email"
	"contact-form-backend/pkg/logger"
	"contact-form-backend/pkg/redis"
)

// @title           Contact Form API
// @version         1.0
// @description     Contact form backend: validates submissions and sends confirmation and notification emails.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	if err := run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// run wires the service and blocks until a shutdown signal or a listener
// failure. Deferred cleanup runs before it returns.
func run() error {
	// 1. Load Config
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	cfg, err := config.LoadConfig(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Starting contact form backend", "port", cfg.Port)

	// 3. Setup Redis (optional, rate limiting falls back to memory)
	var redisPing usecase.PingFunc
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
			redisPing = redis.HealthCheck
		}
	}

	// 4. Setup Email Dispatcher
	smtpCfg, err := email.ConfigFromEnv(cfg.Env)
	if err != nil {
		return fmt.Errorf("smtp config: %w", err)
	}
	dispatcher := email.NewDispatcher(smtpCfg, email.NewSMTPTransport(smtpCfg.Timeout))
	if !dispatcher.IsConfigured() {
		logger.Log.Warn("SMTP credentials not set - submissions will be rejected at dispatch")
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(dispatcher, cfg.ContactEmailTo)
	healthUC := usecase.NewHealthUsecase(dispatcher, redisPing)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		logger.Log.Error("Listen failed", "error", err)
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
