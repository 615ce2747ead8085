package postgres

import (
	"context"
	"errors"
	"fmt"

	"booking-billing-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BindingRepo implements ports.BindingRepository.
type BindingRepo struct {
	pool Pool
}

// NewBindingRepo creates a new BindingRepo.
func NewBindingRepo(pool Pool) *BindingRepo {
	return &BindingRepo{pool: pool}
}

// Create inserts a new customer binding. The primary key on
// (user_id, provider) makes a second binding for the same user fail, which
// is what enforces one provider customer per user.
func (r *BindingRepo) Create(ctx context.Context, b *domain.CustomerBinding) error {
	query := `INSERT INTO customer_bindings (user_id, provider, provider_customer_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query,
		b.UserID, b.Provider, b.ProviderCustomerID, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer binding: %w", err)
	}
	return nil
}

// GetByUserID fetches the binding for a user, or nil if none exists.
func (r *BindingRepo) GetByUserID(ctx context.Context, userID string) (*domain.CustomerBinding, error) {
	query := `SELECT user_id, provider, provider_customer_id, created_at
		FROM customer_bindings WHERE user_id = $1`

	b := &domain.CustomerBinding{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&b.UserID, &b.Provider, &b.ProviderCustomerID, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get binding by user id: %w", err)
	}
	return b, nil
}

// GetByProviderCustomerID fetches the binding for a provider customer, or
// nil if none exists. Used to resolve inbound events back to a user.
func (r *BindingRepo) GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*domain.CustomerBinding, error) {
	query := `SELECT user_id, provider, provider_customer_id, created_at
		FROM customer_bindings WHERE provider_customer_id = $1`

	b := &domain.CustomerBinding{}
	err := r.pool.QueryRow(ctx, query, providerCustomerID).Scan(
		&b.UserID, &b.Provider, &b.ProviderCustomerID, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get binding by provider customer id: %w", err)
	}
	return b, nil
}
