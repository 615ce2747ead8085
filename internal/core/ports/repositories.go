package ports

import (
	"context"
	"time"

	"booking-billing-gateway/internal/core/domain"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// BindingRepository persists user ↔ provider-customer bindings.
// Get methods return (nil, nil) when no binding exists.
type BindingRepository interface {
	// Create inserts a binding. Inserting a second binding for the same
	// user id must fail; bindings are immutable once created.
	Create(ctx context.Context, binding *domain.CustomerBinding) error
	GetByUserID(ctx context.Context, userID string) (*domain.CustomerBinding, error)
	GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*domain.CustomerBinding, error)
}

// PaymentStateRepository is the durable cache of billing snapshots, keyed by
// provider customer id. Upsert replaces the whole row so readers never see a
// half-updated state.
type PaymentStateRepository interface {
	Upsert(ctx context.Context, state *domain.PaymentState) error
	Get(ctx context.Context, providerCustomerID string) (*domain.PaymentState, error)
}

// OutcomeStore holds the rolling webhook outcome window and the bounded
// recent-failure list in a fast, expiring store.
type OutcomeStore interface {
	// Append pushes an outcome and trims the window/failure list to its
	// bound in one atomic step.
	Append(ctx context.Context, outcome *domain.WebhookOutcome) error
	Window(ctx context.Context, provider string) ([]domain.WebhookOutcome, error)
	RecentFailures(ctx context.Context, provider string) ([]domain.WebhookOutcome, error)
	// LastSuccessAt returns nil when no success has been recorded within
	// the retention period.
	LastSuccessAt(ctx context.Context, provider string) (*time.Time, error)
}

// SuppressionStore enforces the alert cooldown per provider.
type SuppressionStore interface {
	// TryAcquire atomically checks-and-sets the suppression window.
	// Returns true if the caller may alert now, false while cooling down.
	TryAcquire(ctx context.Context, provider string, cooldown time.Duration) (bool, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
