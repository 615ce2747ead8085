package postgres

import (
	"context"
	"testing"
	"time"

	"booking-billing-gateway/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *domain.PaymentState {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.PaymentState{
		ProviderCustomerID: "cus_test123",
		Status:             domain.PaymentStatusActive,
		SubscriptionID:     "sub_abc",
		PriceID:            "price_monthly",
		CurrentPeriodStart: now.Add(-24 * time.Hour),
		CurrentPeriodEnd:   now.Add(29 * 24 * time.Hour),
		CancelAtPeriodEnd:  false,
		PaymentMethod:      "visa ****4242",
		UpdatedAt:          now,
	}
}

func stateColumns() []string {
	return []string{
		"provider_customer_id", "status", "subscription_id", "price_id",
		"current_period_start", "current_period_end", "cancel_at_period_end",
		"payment_method", "updated_at",
	}
}

func stateRow(s *domain.PaymentState) *pgxmock.Rows {
	return pgxmock.NewRows(stateColumns()).AddRow(
		s.ProviderCustomerID, string(s.Status), s.SubscriptionID, s.PriceID,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd,
		s.PaymentMethod, s.UpdatedAt,
	)
}

func TestPaymentStateRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStateRepo(mock)
	s := newTestState()

	mock.ExpectExec("INSERT INTO payment_states").
		WithArgs(s.ProviderCustomerID, string(s.Status), s.SubscriptionID, s.PriceID,
			s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd,
			s.PaymentMethod, s.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStateRepo_Upsert_Overwrite(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStateRepo(mock)
	s := domain.NewNoSubscriptionState("cus_test123", time.Now().UTC())

	// Same statement serves insert and overwrite; the conflict clause
	// resolves which one happens.
	mock.ExpectExec("INSERT INTO payment_states").
		WithArgs(s.ProviderCustomerID, string(s.Status), s.SubscriptionID, s.PriceID,
			s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd,
			s.PaymentMethod, s.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Upsert(context.Background(), s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStateRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStateRepo(mock)
	s := newTestState()

	mock.ExpectQuery("SELECT .+ FROM payment_states WHERE provider_customer_id").
		WithArgs(s.ProviderCustomerID).
		WillReturnRows(stateRow(s))

	result, err := repo.Get(context.Background(), s.ProviderCustomerID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.PaymentStatusActive, result.Status)
	assert.Equal(t, s.SubscriptionID, result.SubscriptionID)
	assert.True(t, result.IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStateRepo_Get_NeverReconciled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStateRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payment_states WHERE provider_customer_id").
		WithArgs("cus_unknown").
		WillReturnRows(pgxmock.NewRows(stateColumns()))

	result, err := repo.Get(context.Background(), "cus_unknown")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
