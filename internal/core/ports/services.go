package ports

import (
	"context"
	"time"

	"booking-billing-gateway/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// ProviderClient is the narrow interface to the external payment provider.
// All calls are bounded by the caller's context deadline.
type ProviderClient interface {
	// FindCustomerByUserID searches provider customers by internal user id
	// stored in provider-side metadata. Returns "" when none exists.
	FindCustomerByUserID(ctx context.Context, userID string) (string, error)
	// CreateCustomer creates a provider customer tagged with the internal
	// user id for cross-referencing.
	CreateCustomer(ctx context.Context, userID, email string) (string, error)
	// LatestSubscription returns the customer's most recently created
	// subscription regardless of status, or nil if the customer has none.
	LatestSubscription(ctx context.Context, providerCustomerID string) (*domain.SubscriptionSnapshot, error)
	// CreateCheckoutSession opens a checkout session bound to an existing
	// provider customer and returns the hosted checkout URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (string, error)
}

// CheckoutSessionParams holds the provider-side session parameters.
type CheckoutSessionParams struct {
	ProviderCustomerID string
	PriceID            string
	SuccessURL         string
	CancelURL          string
}

// --- Service Ports (Business Logic) ---

// CheckoutService orchestrates customer binding and checkout creation.
type CheckoutService interface {
	// EnsureCustomer returns the provider customer id bound to the user,
	// creating and persisting the binding first if none exists.
	EnsureCustomer(ctx context.Context, userID, email string) (string, error)
	// CreateCheckoutSession ensures the binding, rejects an already
	// subscribed user with BIL_001, and returns the checkout URL.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
	// PaymentState returns the cached snapshot for the user's bound
	// customer, or the NoSubscription state if nothing is cached yet.
	PaymentState(ctx context.Context, userID string) (*domain.PaymentState, error)
}

// CheckoutRequest holds validated input for checkout session creation.
type CheckoutRequest struct {
	UserID     string
	Email      string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// Reconciler pulls the authoritative provider state and overwrites the
// local snapshot. Idempotent and safe under concurrent invocation for the
// same customer id.
type Reconciler interface {
	Reconcile(ctx context.Context, providerCustomerID string) (*domain.PaymentState, error)
	// ReconcileUser resolves the user's binding first. Used for the eager
	// reconciliation when the browser returns from checkout before the
	// provider's event arrives.
	ReconcileUser(ctx context.Context, userID string) (*domain.PaymentState, error)
}

// IngestAck describes how an event was acknowledged.
type IngestAck struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	// Accepted is true when the event was allowlisted and reconciliation
	// was dispatched; false when the event was acknowledged and ignored.
	Accepted bool `json:"accepted"`
}

// EventIngestor is the webhook intake: verify, filter, dispatch, ack.
type EventIngestor interface {
	// Handle returns an error only for signature verification failures;
	// every verified payload is acknowledged.
	Handle(ctx context.Context, payload []byte, signatureHeader string) (*IngestAck, error)
}

// WebhookMonitor observes every ingestion outcome and classifies pipeline
// health. Recording is best-effort: implementations swallow their own
// failures so the monitor can never take down ingestion.
type WebhookMonitor interface {
	RecordSuccess(ctx context.Context, provider, eventType, eventID string, latency time.Duration)
	RecordFailure(ctx context.Context, provider, eventType, eventID, errSummary string)
	GetStats(ctx context.Context, provider string) (*domain.WebhookStats, error)
	CheckHealth(ctx context.Context, provider string) *domain.HealthReport
}

// AlertNotifier delivers health alerts to the notification collaborator.
type AlertNotifier interface {
	SendAlert(ctx context.Context, report *domain.HealthReport) error
}

// SignatureService signs and verifies HMAC-SHA256 payloads (outbound
// alert payloads; inbound provider signatures are verified by the provider
// SDK).
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenService validates session tokens issued by the identity provider.
type TokenService interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	UserID string
	Email  string
}

// AuditService records audit entries (fire-and-forget).
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
