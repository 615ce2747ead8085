package service

import (
	"context"
	"time"

	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"
	"booking-billing-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	provider    ports.ProviderClient
	bindingRepo ports.BindingRepository
	stateRepo   ports.PaymentStateRepository
	log         zerolog.Logger
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	provider ports.ProviderClient,
	bindingRepo ports.BindingRepository,
	stateRepo ports.PaymentStateRepository,
	log zerolog.Logger,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		provider:    provider,
		bindingRepo: bindingRepo,
		stateRepo:   stateRepo,
		log:         log,
	}
}

// EnsureCustomer returns the provider customer id bound to the user,
// creating the provider customer and the binding if this is the user's
// first contact with billing. Before creating, the provider is searched by
// the user id tag so a binding lost locally is re-attached instead of
// producing a duplicate customer.
func (s *CheckoutServiceImpl) EnsureCustomer(ctx context.Context, userID, email string) (string, error) {
	binding, err := s.bindingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", apperror.ErrDatabaseError(err)
	}
	if binding != nil {
		return binding.ProviderCustomerID, nil
	}

	customerID, err := s.provider.FindCustomerByUserID(ctx, userID)
	if err != nil {
		return "", apperror.ErrProviderAPI("search customer", err)
	}
	if customerID == "" {
		customerID, err = s.provider.CreateCustomer(ctx, userID, email)
		if err != nil {
			return "", apperror.ErrProviderAPI("create customer", err)
		}
	}

	binding = &domain.CustomerBinding{
		UserID:             userID,
		Provider:           domain.ProviderStripe,
		ProviderCustomerID: customerID,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.bindingRepo.Create(ctx, binding); err != nil {
		// A concurrent checkout may have raced us to the insert. The
		// binding is immutable, so re-reading resolves the race.
		existing, getErr := s.bindingRepo.GetByUserID(ctx, userID)
		if getErr == nil && existing != nil {
			return existing.ProviderCustomerID, nil
		}
		return "", apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("customer_id", customerID).
		Msg("customer binding created")

	return customerID, nil
}

// CreateCheckoutSession opens a hosted checkout session for the user.
// An already subscribed user is rejected with BIL_001; the check reads the
// provider, not the local cache, so a snapshot that lags behind a just
// completed checkout cannot let a second subscription through.
func (s *CheckoutServiceImpl) CreateCheckoutSession(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	customerID, err := s.EnsureCustomer(ctx, req.UserID, req.Email)
	if err != nil {
		return "", err
	}

	sub, err := s.provider.LatestSubscription(ctx, customerID)
	if err != nil {
		return "", apperror.ErrProviderAPI("latest subscription", err)
	}
	if sub != nil && sub.IsSubscribed() {
		return "", apperror.ErrAlreadySubscribed()
	}

	url, err := s.provider.CreateCheckoutSession(ctx, ports.CheckoutSessionParams{
		ProviderCustomerID: customerID,
		PriceID:            req.PriceID,
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
	})
	if err != nil {
		return "", apperror.ErrProviderAPI("create checkout session", err)
	}

	s.log.Info().
		Str("user_id", req.UserID).
		Str("customer_id", customerID).
		Str("price_id", req.PriceID).
		Msg("checkout session created")

	return url, nil
}

// PaymentState returns the cached snapshot for the user. A user without a
// binding, or with a binding that has never been reconciled, gets the
// NoSubscription state rather than an error.
func (s *CheckoutServiceImpl) PaymentState(ctx context.Context, userID string) (*domain.PaymentState, error) {
	binding, err := s.bindingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if binding == nil {
		return domain.NewNoSubscriptionState("", time.Now().UTC()), nil
	}

	state, err := s.stateRepo.Get(ctx, binding.ProviderCustomerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if state == nil {
		return domain.NewNoSubscriptionState(binding.ProviderCustomerID, time.Now().UTC()), nil
	}
	return state, nil
}
