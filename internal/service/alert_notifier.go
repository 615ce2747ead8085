package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"booking-billing-gateway/config"
	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// alertRetryIntervals are the delays between delivery attempts.
var alertRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	5 * time.Minute,
}

// AlertEventType identifies health alerts in the receiver's inbox.
const AlertEventType = "WEBHOOK_HEALTH"

// AlertPayload is the JSON structure POSTed to the alert webhook URL.
type AlertPayload struct {
	EventType string    `json:"event_type"`
	Data      AlertData `json:"data"`
	Signature string    `json:"signature"`
}

// AlertData holds the health report details in the alert.
type AlertData struct {
	Provider    string  `json:"provider"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason"`
	SuccessRate float64 `json:"success_rate"`
	Failures    int     `json:"failures"`
	Timestamp   int64   `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookAlertNotifier implements ports.AlertNotifier by POSTing signed
// alert payloads to a configured webhook URL.
type webhookAlertNotifier struct {
	cfg        config.AlertConfig
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewWebhookAlertNotifier creates a new webhook-backed alert notifier.
func NewWebhookAlertNotifier(
	cfg config.AlertConfig,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	log zerolog.Logger,
) ports.AlertNotifier {
	return &webhookAlertNotifier{
		cfg:        cfg,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		log:        log,
	}
}

// SendAlert delivers a health alert asynchronously with retries.
func (n *webhookAlertNotifier) SendAlert(ctx context.Context, report *domain.HealthReport) error {
	if n.cfg.WebhookURL == "" {
		n.log.Debug().Str("provider", report.Provider).Msg("alert: no webhook URL configured, skipping")
		return nil
	}

	data := AlertData{
		Provider:  report.Provider,
		Status:    string(report.Status),
		Reason:    report.Reason,
		Timestamp: report.CheckedAt.Unix(),
	}
	if report.Stats != nil {
		data.SuccessRate = report.Stats.SuccessRate
		data.Failures = report.Stats.Failures
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	signature := n.sigSvc.Sign(n.cfg.SigningSecret, string(dataBytes))

	payload := AlertPayload{
		EventType: AlertEventType,
		Data:      data,
		Signature: signature,
	}

	// Fire async with retries
	go n.deliverWithRetries(n.cfg.WebhookURL, payload, report.Provider)

	return nil
}

// deliverWithRetries attempts to deliver the alert with backoff.
func (n *webhookAlertNotifier) deliverWithRetries(url string, payload AlertPayload, provider string) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		n.log.Error().Err(err).Str("provider", provider).Msg("alert: failed to marshal payload")
		return
	}

	for attempt := 0; attempt <= len(alertRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(alertRetryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payloadBytes))
		if err != nil {
			n.log.Error().Err(err).Str("provider", provider).Int("attempt", attempt+1).Msg("alert: failed to create request")
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.httpClient.Do(req)
		if err != nil {
			n.log.Warn().Err(err).Str("provider", provider).Int("attempt", attempt+1).Msg("alert: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Info().Str("provider", provider).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("alert: delivered successfully")
			return
		}

		n.log.Warn().Str("provider", provider).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("alert: non-2xx response, retrying")
	}

	n.log.Error().Str("provider", provider).Msg("alert: all retry attempts exhausted")
}
