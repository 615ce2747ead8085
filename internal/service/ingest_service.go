package service

import (
	"context"
	"encoding/json"
	"time"

	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"
	"booking-billing-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82/webhook"
)

// reconcileTimeout bounds the detached provider fetch triggered by an
// event. The inbound request has long been acknowledged by then.
const reconcileTimeout = 30 * time.Second

// IngestService implements ports.EventIngestor for Stripe events.
//
// The provider expects a fast 2xx; anything slow or flaky gets retried and
// eventually disables the endpoint. So the pipeline acknowledges first and
// reconciles afterwards: signature check, allowlist filter, customer id
// extraction, then a detached goroutine does the provider fetch. An event
// lost between ack and reconcile is repaired by the next event or the next
// eager reconcile, because reconciliation never depends on event payloads.
type IngestService struct {
	webhookSecret string
	reconciler    ports.Reconciler
	monitor       ports.WebhookMonitor
	log           zerolog.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	webhookSecret string,
	reconciler ports.Reconciler,
	monitor ports.WebhookMonitor,
	log zerolog.Logger,
) *IngestService {
	return &IngestService{
		webhookSecret: webhookSecret,
		reconciler:    reconciler,
		monitor:       monitor,
		log:           log,
	}
}

// Handle verifies and acknowledges one provider event.
func (s *IngestService) Handle(ctx context.Context, payload []byte, signatureHeader string) (*ports.IngestAck, error) {
	received := time.Now()

	if s.webhookSecret == "" {
		s.monitor.RecordFailure(ctx, domain.ProviderStripe, "", "", "webhook signing secret not configured")
		return nil, apperror.ErrMissingSigningSecret()
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		s.monitor.RecordFailure(ctx, domain.ProviderStripe, "", "", "signature verification failed")
		return nil, apperror.ErrInvalidSignature(err)
	}

	eventType := string(event.Type)
	ack := &ports.IngestAck{EventID: event.ID, EventType: eventType}

	if !domain.IsAllowedEventType(eventType) {
		s.log.Debug().
			Str("event_id", event.ID).
			Str("event_type", eventType).
			Msg("event type not allowlisted, acknowledged and ignored")
		return ack, nil
	}

	customerID := extractCustomerID(event.Data.Raw)
	if customerID == "" {
		s.monitor.RecordFailure(ctx, domain.ProviderStripe, eventType, event.ID, "event carries no customer id")
		s.log.Warn().
			Str("event_id", event.ID).
			Str("event_type", eventType).
			Msg("allowlisted event without customer id")
		return ack, nil
	}

	ack.Accepted = true
	go s.reconcileAsync(customerID, eventType, event.ID, received)

	return ack, nil
}

// reconcileAsync runs the provider fetch after the event has been acked.
// It must never panic its way up: a crash here would take the whole
// process down with no request left to fail.
func (s *IngestService) reconcileAsync(customerID, eventType, eventID string, received time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("event_id", eventID).
				Msg("panic during async reconciliation")
			s.monitor.RecordFailure(context.Background(), domain.ProviderStripe, eventType, eventID, "panic during reconciliation")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if _, err := s.reconciler.Reconcile(ctx, customerID); err != nil {
		s.log.Error().Err(err).
			Str("event_id", eventID).
			Str("event_type", eventType).
			Str("customer_id", customerID).
			Msg("event-triggered reconciliation failed")
		s.monitor.RecordFailure(ctx, domain.ProviderStripe, eventType, eventID, err.Error())
		return
	}

	s.monitor.RecordSuccess(ctx, domain.ProviderStripe, eventType, eventID, time.Since(received))
}

// extractCustomerID pulls the customer reference out of the event object.
// All allowlisted types carry a top-level "customer" field, either as a
// plain id or as an expanded object.
func extractCustomerID(raw json.RawMessage) string {
	var obj struct {
		Customer any `json:"customer"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	switch v := obj.Customer.(type) {
	case string:
		return v
	case map[string]any:
		id, _ := v["id"].(string)
		return id
	default:
		return ""
	}
}
