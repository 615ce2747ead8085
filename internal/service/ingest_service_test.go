package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports/mocks"
	"booking-billing-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/mock/gomock"
)

const testWebhookSecret = "whsec_test_secret"

type ingestTestDeps struct {
	svc        *IngestService
	reconciler *mocks.MockReconciler
	monitor    *mocks.MockWebhookMonitor
	ctrl       *gomock.Controller
}

func setupIngestService(t *testing.T) *ingestTestDeps {
	ctrl := gomock.NewController(t)
	d := &ingestTestDeps{
		reconciler: mocks.NewMockReconciler(ctrl),
		monitor:    mocks.NewMockWebhookMonitor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewIngestService(testWebhookSecret, d.reconciler, d.monitor, zerolog.Nop())
	return d
}

// signPayload builds a valid Stripe-Signature header for the payload.
func signPayload(payload []byte, secret string) string {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig))
}

func eventPayload(eventID, eventType, customerID string) []byte {
	customer := ""
	if customerID != "" {
		customer = fmt.Sprintf(`,"customer":%q`, customerID)
	}
	return []byte(fmt.Sprintf(
		`{"id":%q,"type":%q,"data":{"object":{"id":"obj_1"%s}}}`,
		eventID, eventType, customer,
	))
}

func TestIngestService_Handle_InvalidSignature(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	payload := eventPayload("evt_1", "invoice.paid", "cus_1")

	d.monitor.EXPECT().RecordFailure(gomock.Any(), domain.ProviderStripe, "", "", "signature verification failed")

	_, err := d.svc.Handle(context.Background(), payload, "t=1,v1=deadbeef")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "SEC_001", appErr.Code)
}

func TestIngestService_Handle_MissingSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor := mocks.NewMockWebhookMonitor(ctrl)
	reconciler := mocks.NewMockReconciler(ctrl)
	svc := NewIngestService("", reconciler, monitor, zerolog.Nop())

	monitor.EXPECT().RecordFailure(gomock.Any(), domain.ProviderStripe, "", "", "webhook signing secret not configured")

	payload := eventPayload("evt_1", "invoice.paid", "cus_1")
	_, err := svc.Handle(context.Background(), payload, signPayload(payload, "whsec_other"))
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "SEC_002", appErr.Code)
}

func TestIngestService_Handle_IgnoredEventType(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	// Not allowlisted: acked, ignored, and not recorded.
	payload := eventPayload("evt_1", "charge.refunded", "cus_1")

	ack, err := d.svc.Handle(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.False(t, ack.Accepted)
	assert.Equal(t, "evt_1", ack.EventID)
	assert.Equal(t, "charge.refunded", ack.EventType)
}

func TestIngestService_Handle_MissingCustomerID(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	payload := eventPayload("evt_1", "invoice.paid", "")

	d.monitor.EXPECT().RecordFailure(gomock.Any(), domain.ProviderStripe, "invoice.paid", "evt_1", "event carries no customer id")

	ack, err := d.svc.Handle(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err, "events without a customer are still acknowledged")
	assert.False(t, ack.Accepted)
}

func TestIngestService_Handle_DispatchesReconciliation(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	payload := eventPayload("evt_1", "customer.subscription.updated", "cus_1")

	done := make(chan struct{})
	d.reconciler.EXPECT().Reconcile(gomock.Any(), "cus_1").Return(&domain.PaymentState{
		ProviderCustomerID: "cus_1",
		Status:             domain.PaymentStatusActive,
	}, nil)
	d.monitor.EXPECT().
		RecordSuccess(gomock.Any(), domain.ProviderStripe, "customer.subscription.updated", "evt_1", gomock.Any()).
		Do(func(_ context.Context, _, _, _ string, _ time.Duration) {
			close(done)
		})

	ack, err := d.svc.Handle(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.True(t, ack.Accepted)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async reconciliation timed out")
	}
}

func TestIngestService_Handle_ReconcileFailureRecorded(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	payload := eventPayload("evt_1", "invoice.payment_failed", "cus_1")

	done := make(chan struct{})
	d.reconciler.EXPECT().Reconcile(gomock.Any(), "cus_1").
		Return(nil, apperror.ErrProviderAPI("latest subscription", assert.AnError))
	d.monitor.EXPECT().
		RecordFailure(gomock.Any(), domain.ProviderStripe, "invoice.payment_failed", "evt_1", gomock.Any()).
		Do(func(_ context.Context, _, _, _, _ string) {
			close(done)
		})

	ack, err := d.svc.Handle(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err, "reconcile failures never fail the ack")
	assert.True(t, ack.Accepted)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async failure recording timed out")
	}
}

func TestIngestService_Handle_ExpandedCustomerObject(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	payload := []byte(`{"id":"evt_1","type":"invoice.paid","data":{"object":{"id":"in_1","customer":{"id":"cus_exp","email":"user@example.com"}}}}`)

	done := make(chan struct{})
	d.reconciler.EXPECT().Reconcile(gomock.Any(), "cus_exp").Return(&domain.PaymentState{}, nil)
	d.monitor.EXPECT().
		RecordSuccess(gomock.Any(), domain.ProviderStripe, "invoice.paid", "evt_1", gomock.Any()).
		Do(func(_ context.Context, _, _, _ string, _ time.Duration) {
			close(done)
		})

	ack, err := d.svc.Handle(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.True(t, ack.Accepted)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async reconciliation timed out")
	}
}

func TestExtractCustomerID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain id", `{"customer":"cus_1"}`, "cus_1"},
		{"expanded object", `{"customer":{"id":"cus_2"}}`, "cus_2"},
		{"absent", `{"id":"in_1"}`, ""},
		{"null", `{"customer":null}`, ""},
		{"malformed", `{`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCustomerID([]byte(tt.raw)))
		})
	}
}
