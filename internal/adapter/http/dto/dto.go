package dto

import (
	"time"

	"booking-billing-gateway/internal/core/domain"
)

// CheckoutSessionRequest is the request body for creating a checkout session.
type CheckoutSessionRequest struct {
	PriceID    string `json:"price_id" binding:"required,max=100"`
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

// CheckoutSessionResponse is the response body for a created session.
type CheckoutSessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// PaymentStateResponse is the response body for the billing state.
type PaymentStateResponse struct {
	Status             string  `json:"status"`
	SubscriptionID     string  `json:"subscription_id,omitempty"`
	PriceID            string  `json:"price_id,omitempty"`
	CurrentPeriodStart *string `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *string `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool    `json:"cancel_at_period_end,omitempty"`
	PaymentMethod      string  `json:"payment_method,omitempty"`
	UpdatedAt          string  `json:"updated_at"`
}

// ToPaymentStateResponse maps a domain snapshot to the response body.
func ToPaymentStateResponse(s *domain.PaymentState) PaymentStateResponse {
	resp := PaymentStateResponse{
		Status:            string(s.Status),
		SubscriptionID:    s.SubscriptionID,
		PriceID:           s.PriceID,
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
		PaymentMethod:     s.PaymentMethod,
		UpdatedAt:         s.UpdatedAt.Format(time.RFC3339),
	}
	if s.IsActive() {
		start := s.CurrentPeriodStart.Format(time.RFC3339)
		end := s.CurrentPeriodEnd.Format(time.RFC3339)
		resp.CurrentPeriodStart = &start
		resp.CurrentPeriodEnd = &end
	}
	return resp
}

// WebhookAckResponse is the response body for an acknowledged event.
type WebhookAckResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Accepted  bool   `json:"accepted"`
}

// WebhookHealthResponse is the response body for the monitor endpoint.
type WebhookHealthResponse struct {
	Provider  string               `json:"provider"`
	Status    string               `json:"status"`
	Reason    string               `json:"reason,omitempty"`
	Stats     *domain.WebhookStats `json:"stats,omitempty"`
	CheckedAt string               `json:"checked_at"`
}

// ToWebhookHealthResponse maps a health report to the response body.
func ToWebhookHealthResponse(r *domain.HealthReport) WebhookHealthResponse {
	return WebhookHealthResponse{
		Provider:  r.Provider,
		Status:    string(r.Status),
		Reason:    r.Reason,
		Stats:     r.Stats,
		CheckedAt: r.CheckedAt.Format(time.RFC3339),
	}
}
