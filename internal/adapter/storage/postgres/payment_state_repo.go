package postgres

import (
	"context"
	"errors"
	"fmt"

	"booking-billing-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// PaymentStateRepo implements ports.PaymentStateRepository.
type PaymentStateRepo struct {
	pool Pool
}

// NewPaymentStateRepo creates a new PaymentStateRepo.
func NewPaymentStateRepo(pool Pool) *PaymentStateRepo {
	return &PaymentStateRepo{pool: pool}
}

// Upsert atomically replaces the snapshot for a customer. The whole row is
// overwritten on conflict so the stored state is always one complete
// authoritative read, never a merge of two.
func (r *PaymentStateRepo) Upsert(ctx context.Context, s *domain.PaymentState) error {
	query := `INSERT INTO payment_states
		(provider_customer_id, status, subscription_id, price_id,
		 current_period_start, current_period_end, cancel_at_period_end,
		 payment_method, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provider_customer_id) DO UPDATE SET
			status = EXCLUDED.status,
			subscription_id = EXCLUDED.subscription_id,
			price_id = EXCLUDED.price_id,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			payment_method = EXCLUDED.payment_method,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		s.ProviderCustomerID, string(s.Status), s.SubscriptionID, s.PriceID,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd,
		s.PaymentMethod, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert payment state: %w", err)
	}
	return nil
}

// Get fetches the cached snapshot for a customer, or nil if the customer
// has never been reconciled.
func (r *PaymentStateRepo) Get(ctx context.Context, providerCustomerID string) (*domain.PaymentState, error) {
	query := `SELECT provider_customer_id, status, subscription_id, price_id,
		current_period_start, current_period_end, cancel_at_period_end,
		payment_method, updated_at
		FROM payment_states WHERE provider_customer_id = $1`

	s := &domain.PaymentState{}
	var status string
	err := r.pool.QueryRow(ctx, query, providerCustomerID).Scan(
		&s.ProviderCustomerID, &status, &s.SubscriptionID, &s.PriceID,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CancelAtPeriodEnd,
		&s.PaymentMethod, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment state: %w", err)
	}
	s.Status = domain.PaymentStatus(status)
	return s, nil
}
