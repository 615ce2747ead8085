package service

import (
	"context"
	"time"

	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"
	"booking-billing-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// ReconcilerService implements ports.Reconciler.
//
// Webhook events are treated as triggers only: on every reconcile the
// provider is re-queried for the customer's subscriptions and the local
// snapshot is overwritten with the result. Stale, duplicated or reordered
// events all converge to the same state because the provider read is
// authoritative. Concurrent reconciles for the same customer are safe for
// the same reason: whichever upsert lands last wrote a complete snapshot.
type ReconcilerService struct {
	provider    ports.ProviderClient
	stateRepo   ports.PaymentStateRepository
	bindingRepo ports.BindingRepository
	log         zerolog.Logger
}

// NewReconcilerService creates a new ReconcilerService.
func NewReconcilerService(
	provider ports.ProviderClient,
	stateRepo ports.PaymentStateRepository,
	bindingRepo ports.BindingRepository,
	log zerolog.Logger,
) *ReconcilerService {
	return &ReconcilerService{
		provider:    provider,
		stateRepo:   stateRepo,
		bindingRepo: bindingRepo,
		log:         log,
	}
}

// Reconcile fetches the customer's latest subscription from the provider
// and atomically replaces the cached snapshot.
func (s *ReconcilerService) Reconcile(ctx context.Context, providerCustomerID string) (*domain.PaymentState, error) {
	sub, err := s.provider.LatestSubscription(ctx, providerCustomerID)
	if err != nil {
		return nil, apperror.ErrProviderAPI("latest subscription", err)
	}

	now := time.Now().UTC()
	var state *domain.PaymentState
	if sub == nil || !sub.IsSubscribed() {
		state = domain.NewNoSubscriptionState(providerCustomerID, now)
	} else {
		state = domain.NewActiveState(providerCustomerID, sub, now)
	}

	if err := s.stateRepo.Upsert(ctx, state); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Debug().
		Str("customer_id", providerCustomerID).
		Str("status", string(state.Status)).
		Str("subscription_id", state.SubscriptionID).
		Msg("payment state reconciled")

	return state, nil
}

// ReconcileUser resolves the user's binding and reconciles its customer.
// Returns BIL_002 if the user has never gone through checkout.
func (s *ReconcilerService) ReconcileUser(ctx context.Context, userID string) (*domain.PaymentState, error) {
	binding, err := s.bindingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if binding == nil {
		return nil, apperror.ErrNotFound("customer binding")
	}
	return s.Reconcile(ctx, binding.ProviderCustomerID)
}
