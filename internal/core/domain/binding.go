package domain

import "time"

// ProviderStripe is the only payment provider currently wired in. The
// monitor and binding records carry the provider name so a second provider
// can be observed independently.
const ProviderStripe = "stripe"

// CustomerBinding maps an internal user to exactly one provider customer.
// It is created before the first checkout and immutable afterwards; the
// binding is enforced here, never by the provider.
type CustomerBinding struct {
	UserID             string    `json:"user_id"`
	Provider           string    `json:"provider"`
	ProviderCustomerID string    `json:"provider_customer_id"`
	CreatedAt          time.Time `json:"created_at"`
}
