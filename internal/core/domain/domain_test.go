package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentState_IsActive(t *testing.T) {
	tests := []struct {
		name   string
		status PaymentStatus
		want   bool
	}{
		{"active", PaymentStatusActive, true},
		{"no subscription", PaymentStatusNoSubscription, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &PaymentState{Status: tt.status}
			assert.Equal(t, tt.want, s.IsActive())
		})
	}
}

func TestSubscriptionSnapshot_IsSubscribed(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"active", "active", true},
		{"trialing", "trialing", true},
		{"past_due", "past_due", true},
		{"canceled", "canceled", false},
		{"incomplete", "incomplete", false},
		{"unpaid", "unpaid", false},
		{"paused", "paused", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &SubscriptionSnapshot{Status: tt.status}
			assert.Equal(t, tt.want, sub.IsSubscribed())
		})
	}
}

func TestNewActiveState_CopiesSnapshotFields(t *testing.T) {
	now := time.Now().UTC()
	sub := &SubscriptionSnapshot{
		ID:                 "sub_123",
		Status:             "active",
		PriceID:            "price_monthly",
		CurrentPeriodStart: now.Add(-24 * time.Hour),
		CurrentPeriodEnd:   now.Add(29 * 24 * time.Hour),
		CancelAtPeriodEnd:  true,
		PaymentMethod:      "visa ****4242",
	}

	state := NewActiveState("cus_123", sub, now)

	assert.Equal(t, "cus_123", state.ProviderCustomerID)
	assert.Equal(t, PaymentStatusActive, state.Status)
	assert.Equal(t, "sub_123", state.SubscriptionID)
	assert.Equal(t, "price_monthly", state.PriceID)
	assert.Equal(t, sub.CurrentPeriodStart, state.CurrentPeriodStart)
	assert.Equal(t, sub.CurrentPeriodEnd, state.CurrentPeriodEnd)
	assert.True(t, state.CancelAtPeriodEnd)
	assert.Equal(t, "visa ****4242", state.PaymentMethod)
	assert.Equal(t, now, state.UpdatedAt)
}

func TestNewNoSubscriptionState(t *testing.T) {
	now := time.Now().UTC()
	state := NewNoSubscriptionState("cus_456", now)

	assert.Equal(t, "cus_456", state.ProviderCustomerID)
	assert.Equal(t, PaymentStatusNoSubscription, state.Status)
	assert.False(t, state.IsActive())
	assert.Empty(t, state.SubscriptionID)
}

func TestIsAllowedEventType(t *testing.T) {
	allowed := []string{
		"customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted",
		"customer.subscription.paused",
		"customer.subscription.resumed",
		"invoice.paid",
		"invoice.payment_failed",
		"invoice.payment_action_required",
		"payment_intent.succeeded",
		"payment_intent.payment_failed",
		"payment_intent.canceled",
	}
	for _, et := range allowed {
		assert.True(t, IsAllowedEventType(et), et)
	}

	ignored := []string{
		"charge.succeeded",
		"customer.created",
		"invoice.created",
		"payout.paid",
		"",
	}
	for _, et := range ignored {
		assert.False(t, IsAllowedEventType(et), et)
	}
}
