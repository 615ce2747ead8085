package stripe

import (
	"context"
	"fmt"
	"time"

	"booking-billing-gateway/config"
	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// metadataUserIDKey tags provider customers with the internal user id so
// they can be found again without a local lookup.
const metadataUserIDKey = "user_id"

// Client implements ports.ProviderClient against the Stripe API.
type Client struct {
	api     *client.API
	timeout time.Duration
}

// NewClient creates a Stripe API client.
func NewClient(cfg config.StripeConfig) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Client{
		api:     api,
		timeout: cfg.APITimeout,
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// FindCustomerByUserID searches Stripe customers by the user_id metadata
// tag. Returns "" when no customer carries the tag.
func (c *Client) FindCustomerByUserID(ctx context.Context, userID string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['%s']:'%s'", metadataUserIDKey, userID),
			Context: ctx,
		},
	}
	params.Limit = stripe.Int64(1)

	iter := c.api.Customers.Search(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("search customer: %w", err)
	}
	return "", nil
}

// CreateCustomer creates a Stripe customer tagged with the user id.
func (c *Client) CreateCustomer(ctx context.Context, userID, email string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Metadata: map[string]string{
			metadataUserIDKey: userID,
		},
	}

	cus, err := c.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return cus.ID, nil
}

// LatestSubscription returns the customer's most recently created
// subscription regardless of status, or nil if the customer has none. The
// default payment method is expanded so the snapshot can carry a display
// string.
func (c *Client) LatestSubscription(ctx context.Context, providerCustomerID string) (*domain.SubscriptionSnapshot, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(providerCustomerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.AddExpand("data.default_payment_method")

	var latest *stripe.Subscription
	iter := c.api.Subscriptions.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		if latest == nil || sub.Created > latest.Created {
			latest = sub
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if latest == nil {
		return nil, nil
	}
	return snapshotFromSubscription(latest), nil
}

// CreateCheckoutSession opens a subscription checkout session and returns
// the hosted checkout URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, p ports.CheckoutSessionParams) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Params:   stripe.Params{Context: ctx},
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(p.ProviderCustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// snapshotFromSubscription flattens a Stripe subscription into the
// provider-agnostic snapshot. Billing period fields live on the
// subscription item since the Basil API.
func snapshotFromSubscription(sub *stripe.Subscription) *domain.SubscriptionSnapshot {
	snap := &domain.SubscriptionSnapshot{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Created:           time.Unix(sub.Created, 0).UTC(),
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			snap.PriceID = item.Price.ID
		}
		snap.CurrentPeriodStart = time.Unix(item.CurrentPeriodStart, 0).UTC()
		snap.CurrentPeriodEnd = time.Unix(item.CurrentPeriodEnd, 0).UTC()
	}

	if pm := sub.DefaultPaymentMethod; pm != nil && pm.Card != nil {
		snap.PaymentMethod = fmt.Sprintf("%s ****%s", pm.Card.Brand, pm.Card.Last4)
	}

	return snap
}
