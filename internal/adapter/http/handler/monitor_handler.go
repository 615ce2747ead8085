package handler

import (
	"net/http"

	"booking-billing-gateway/internal/adapter/http/dto"
	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// MonitorHandler exposes the webhook pipeline health.
type MonitorHandler struct {
	monitor ports.WebhookMonitor
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(monitor ports.WebhookMonitor) *MonitorHandler {
	return &MonitorHandler{monitor: monitor}
}

// GetWebhookHealth handles GET /health/webhooks. Like /health it answers
// 503 when the pipeline is unhealthy so load balancers and probes can key
// off the status code.
func (h *MonitorHandler) GetWebhookHealth(c *gin.Context) {
	report := h.monitor.CheckHealth(c.Request.Context(), domain.ProviderStripe)

	httpCode := http.StatusOK
	if report.Status == domain.HealthStatusUnhealthy {
		httpCode = http.StatusServiceUnavailable
	}
	c.JSON(httpCode, dto.ToWebhookHealthResponse(report))
}

// HealthCheck handles GET /health (deep check of infrastructure deps).
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
