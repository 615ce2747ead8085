package domain

import "time"

// PaymentStatus is the discriminant of the PaymentState union.
type PaymentStatus string

const (
	// PaymentStatusNoSubscription is the terminal absence state.
	PaymentStatusNoSubscription PaymentStatus = "NO_SUBSCRIPTION"
	PaymentStatusActive         PaymentStatus = "ACTIVE"
)

// PaymentState is the cached billing snapshot for one provider customer.
// It is always the complete state last fetched from the provider — never a
// partial merge of webhook event fields. Only the reconciler writes it.
// Subscription fields are meaningful only when Status is ACTIVE.
type PaymentState struct {
	ProviderCustomerID string        `json:"provider_customer_id"`
	Status             PaymentStatus `json:"status"`
	SubscriptionID     string        `json:"subscription_id,omitempty"`
	PriceID            string        `json:"price_id,omitempty"`
	CurrentPeriodStart time.Time     `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   time.Time     `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool          `json:"cancel_at_period_end,omitempty"`
	PaymentMethod      string        `json:"payment_method,omitempty"` // e.g. "visa ****4242"
	UpdatedAt          time.Time     `json:"updated_at"`
}

// IsActive returns true if the customer currently has a subscription.
func (s *PaymentState) IsActive() bool {
	return s.Status == PaymentStatusActive
}

// SubscriptionSnapshot is the provider-agnostic view of one subscription as
// returned by an authoritative provider read. The reconciler builds
// PaymentState from this, never from event payloads.
type SubscriptionSnapshot struct {
	ID                 string    `json:"id"`
	Status             string    `json:"status"` // provider status: active, trialing, past_due, canceled, ...
	PriceID            string    `json:"price_id"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	PaymentMethod      string    `json:"payment_method"`
	Created            time.Time `json:"created"`
}

// subscribedStatuses are the provider statuses that count as an active
// subscription. past_due keeps access while the provider retries the charge.
var subscribedStatuses = map[string]struct{}{
	"active":   {},
	"trialing": {},
	"past_due": {},
}

// IsSubscribed returns true if this subscription grants access.
func (s *SubscriptionSnapshot) IsSubscribed() bool {
	_, ok := subscribedStatuses[s.Status]
	return ok
}

// NewNoSubscriptionState builds the absence snapshot for a customer.
func NewNoSubscriptionState(providerCustomerID string, now time.Time) *PaymentState {
	return &PaymentState{
		ProviderCustomerID: providerCustomerID,
		Status:             PaymentStatusNoSubscription,
		UpdatedAt:          now,
	}
}

// NewActiveState builds the subscribed snapshot from an authoritative read.
func NewActiveState(providerCustomerID string, sub *SubscriptionSnapshot, now time.Time) *PaymentState {
	return &PaymentState{
		ProviderCustomerID: providerCustomerID,
		Status:             PaymentStatusActive,
		SubscriptionID:     sub.ID,
		PriceID:            sub.PriceID,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		PaymentMethod:      sub.PaymentMethod,
		UpdatedAt:          now,
	}
}
