package handler

import (
	"booking-billing-gateway/internal/adapter/http/middleware"
	redisStore "booking-billing-gateway/internal/adapter/storage/redis"
	"booking-billing-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CheckoutSvc    ports.CheckoutService
	Reconciler     ports.Reconciler
	Ingestor       ports.EventIngestor
	Monitor        ports.WebhookMonitor
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health checks (deep — verifies PostgreSQL + Redis) and the webhook
	// pipeline monitor
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	monitorHandler := NewMonitorHandler(deps.Monitor)
	r.GET("/health/webhooks", monitorHandler.GetWebhookHealth)

	// Provider events: no auth middleware, the payload signature is the
	// authentication
	webhookHandler := NewWebhookHandler(deps.Ingestor)
	r.POST("/webhooks/stripe", webhookHandler.HandleStripeEvent)

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes (JWT-authenticated)
	v1 := r.Group("/api/v1")
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	billingHandler := NewBillingHandler(deps.CheckoutSvc, deps.Reconciler)

	checkout := v1.Group("/checkout", jwtAuth)
	{
		checkout.POST("/sessions", rl("checkout"), billingHandler.CreateCheckoutSession)
		checkout.POST("/complete", rl("checkout"), billingHandler.CompleteCheckout)
	}

	billing := v1.Group("/billing", jwtAuth)
	{
		billing.GET("/state", rl("billing"), billingHandler.GetBillingState)
	}

	return r
}
