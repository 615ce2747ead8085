package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-billing-gateway/config"
	httpHandler "booking-billing-gateway/internal/adapter/http/handler"
	stripeProvider "booking-billing-gateway/internal/adapter/provider/stripe"
	pgStorage "booking-billing-gateway/internal/adapter/storage/postgres"
	redisStorage "booking-billing-gateway/internal/adapter/storage/redis"
	"booking-billing-gateway/internal/core/ports"
	"booking-billing-gateway/internal/service"
	"booking-billing-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Booking Billing Gateway")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	bindingRepo := pgStorage.NewBindingRepo(pool)
	stateRepo := pgStorage.NewPaymentStateRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)

	// Initialize Redis stores
	outcomeStore := redisStorage.NewOutcomeStore(rdb, cfg.Monitor)
	suppressionStore := redisStorage.NewSuppressionStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize provider client
	stripeClient := stripeProvider.NewClient(cfg.Stripe)
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn().Msg("Stripe webhook secret is not configured, inbound events will be rejected")
	}

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Initialize business services
	alertNotifier := service.NewWebhookAlertNotifier(cfg.Alert, sigSvc, &http.Client{Timeout: 10 * time.Second}, log)
	monitorSvc := service.NewMonitorService(
		outcomeStore,
		suppressionStore,
		alertNotifier,
		cfg.Monitor,
		cfg.Alert,
		cfg.Stripe.WebhookSecret != "",
		log,
	)
	reconcilerSvc := service.NewReconcilerService(stripeClient, stateRepo, bindingRepo, log)
	checkoutSvc := service.NewCheckoutService(stripeClient, bindingRepo, stateRepo, log)
	ingestSvc := service.NewIngestService(cfg.Stripe.WebhookSecret, reconcilerSvc, monitorSvc, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CheckoutSvc:    checkoutSvc,
		Reconciler:     reconcilerSvc,
		Ingestor:       ingestSvc,
		Monitor:        monitorSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:       auditSvc,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
