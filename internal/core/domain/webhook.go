package domain

import (
	"time"

	"github.com/google/uuid"
)

// AllowedEventTypes is the fixed allowlist of provider event types that can
// carry subscription-relevant state. The provider emits well over 250 types;
// everything else is acknowledged and ignored.
var AllowedEventTypes = map[string]struct{}{
	"customer.subscription.created":   {},
	"customer.subscription.updated":   {},
	"customer.subscription.deleted":   {},
	"customer.subscription.paused":    {},
	"customer.subscription.resumed":   {},
	"invoice.paid":                    {},
	"invoice.payment_failed":          {},
	"invoice.payment_action_required": {},
	"payment_intent.succeeded":        {},
	"payment_intent.payment_failed":   {},
	"payment_intent.canceled":         {},
}

// IsAllowedEventType reports whether the event type is in the allowlist.
func IsAllowedEventType(eventType string) bool {
	_, ok := AllowedEventTypes[eventType]
	return ok
}

// WebhookOutcome records the result of processing one provider event.
// Outcomes are appended to a bounded rolling window; they are never updated
// in place.
type WebhookOutcome struct {
	ID        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	EventType string    `json:"event_type"`
	EventID   string    `json:"event_id"`
	Success   bool      `json:"success"`
	LatencyMs int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WebhookStats aggregates the rolling outcome window for one provider.
type WebhookStats struct {
	Provider       string           `json:"provider"`
	Total          int              `json:"total"`
	Successes      int              `json:"successes"`
	Failures       int              `json:"failures"`
	SuccessRate    float64          `json:"success_rate"` // 0..1 over the window; 1 when empty
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	LastSuccessAt  *time.Time       `json:"last_success_at,omitempty"`
	RecentFailures []WebhookOutcome `json:"recent_failures"`
}

// HealthStatus classifies the webhook pipeline health.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "HEALTHY"
	HealthStatusDegraded  HealthStatus = "DEGRADED"
	HealthStatusUnhealthy HealthStatus = "UNHEALTHY"
)

// HealthReport is the result of a health classification.
type HealthReport struct {
	Provider  string        `json:"provider"`
	Status    HealthStatus  `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Stats     *WebhookStats `json:"stats,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}
