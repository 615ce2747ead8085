package service

import (
	"context"
	"fmt"
	"time"

	"booking-billing-gateway/config"
	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MonitorService implements ports.WebhookMonitor.
//
// Recording is strictly best-effort: a broken Redis must never turn into a
// webhook ingestion failure, so all store errors here are logged and
// swallowed. Every recorded failure also re-evaluates health and may fire
// an alert, throttled by the suppression store.
type MonitorService struct {
	outcomes         ports.OutcomeStore
	suppression      ports.SuppressionStore
	notifier         ports.AlertNotifier
	cfg              config.MonitorConfig
	cooldown         time.Duration
	secretConfigured bool
	log              zerolog.Logger
}

// NewMonitorService creates a new MonitorService. notifier may be nil, in
// which case unhealthy findings are only logged.
func NewMonitorService(
	outcomes ports.OutcomeStore,
	suppression ports.SuppressionStore,
	notifier ports.AlertNotifier,
	cfg config.MonitorConfig,
	alertCfg config.AlertConfig,
	secretConfigured bool,
	log zerolog.Logger,
) *MonitorService {
	return &MonitorService{
		outcomes:         outcomes,
		suppression:      suppression,
		notifier:         notifier,
		cfg:              cfg,
		cooldown:         alertCfg.Cooldown,
		secretConfigured: secretConfigured,
		log:              log,
	}
}

// RecordSuccess appends a successful outcome to the rolling window.
func (s *MonitorService) RecordSuccess(ctx context.Context, provider, eventType, eventID string, latency time.Duration) {
	s.record(ctx, &domain.WebhookOutcome{
		ID:        uuid.New(),
		Provider:  provider,
		EventType: eventType,
		EventID:   eventID,
		Success:   true,
		LatencyMs: latency.Milliseconds(),
		Timestamp: time.Now().UTC(),
	})
}

// RecordFailure appends a failed outcome and re-evaluates health.
func (s *MonitorService) RecordFailure(ctx context.Context, provider, eventType, eventID, errSummary string) {
	s.record(ctx, &domain.WebhookOutcome{
		ID:        uuid.New(),
		Provider:  provider,
		EventType: eventType,
		EventID:   eventID,
		Success:   false,
		Error:     errSummary,
		Timestamp: time.Now().UTC(),
	})
	s.maybeAlert(ctx, provider)
}

func (s *MonitorService) record(ctx context.Context, o *domain.WebhookOutcome) {
	if err := s.outcomes.Append(ctx, o); err != nil {
		s.log.Warn().Err(err).
			Str("provider", o.Provider).
			Str("event_id", o.EventID).
			Msg("failed to record webhook outcome")
	}
}

// GetStats aggregates the rolling window for a provider.
func (s *MonitorService) GetStats(ctx context.Context, provider string) (*domain.WebhookStats, error) {
	window, err := s.outcomes.Window(ctx, provider)
	if err != nil {
		return nil, err
	}

	stats := &domain.WebhookStats{
		Provider:    provider,
		Total:       len(window),
		SuccessRate: 1,
	}

	var latencySum int64
	for _, o := range window {
		if o.Success {
			stats.Successes++
			latencySum += o.LatencyMs
		} else {
			stats.Failures++
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successes) / float64(stats.Total)
	}
	if stats.Successes > 0 {
		stats.AvgLatencyMs = float64(latencySum) / float64(stats.Successes)
	}

	last, err := s.outcomes.LastSuccessAt(ctx, provider)
	if err != nil {
		return nil, err
	}
	stats.LastSuccessAt = last

	failures, err := s.outcomes.RecentFailures(ctx, provider)
	if err != nil {
		return nil, err
	}
	stats.RecentFailures = failures

	return stats, nil
}

// CheckHealth classifies the webhook pipeline for a provider.
func (s *MonitorService) CheckHealth(ctx context.Context, provider string) *domain.HealthReport {
	report := &domain.HealthReport{
		Provider:  provider,
		CheckedAt: time.Now().UTC(),
	}

	if !s.secretConfigured {
		report.Status = domain.HealthStatusUnhealthy
		report.Reason = "webhook signing secret not configured"
		return report
	}

	stats, err := s.GetStats(ctx, provider)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", provider).Msg("health check could not read outcome store")
		report.Status = domain.HealthStatusDegraded
		report.Reason = "outcome store unavailable"
		return report
	}
	report.Stats = stats

	if stats.Total == 0 {
		report.Status = domain.HealthStatusHealthy
		report.Reason = "no recent webhook traffic"
		return report
	}

	staleSuccess := stats.LastSuccessAt == nil ||
		time.Since(*stats.LastSuccessAt) > s.cfg.StaleSuccessCutoff

	switch {
	case stats.SuccessRate < s.cfg.UnhealthyBelow:
		report.Status = domain.HealthStatusUnhealthy
		report.Reason = fmt.Sprintf("success rate %.2f below %.2f", stats.SuccessRate, s.cfg.UnhealthyBelow)
	case staleSuccess && stats.Failures > 0:
		report.Status = domain.HealthStatusUnhealthy
		report.Reason = fmt.Sprintf("no successful ingestion within %s", s.cfg.StaleSuccessCutoff)
	case stats.SuccessRate < s.cfg.DegradedBelow:
		report.Status = domain.HealthStatusDegraded
		report.Reason = fmt.Sprintf("success rate %.2f below %.2f", stats.SuccessRate, s.cfg.DegradedBelow)
	case stats.AvgLatencyMs > float64(s.cfg.LatencyWarning.Milliseconds()):
		report.Status = domain.HealthStatusDegraded
		report.Reason = fmt.Sprintf("average processing latency %.0fms above %s", stats.AvgLatencyMs, s.cfg.LatencyWarning)
	default:
		report.Status = domain.HealthStatusHealthy
	}

	return report
}

// maybeAlert sends an alert if the provider just classified unhealthy and
// no alert went out within the cooldown.
func (s *MonitorService) maybeAlert(ctx context.Context, provider string) {
	report := s.CheckHealth(ctx, provider)
	if report.Status != domain.HealthStatusUnhealthy {
		return
	}

	acquired, err := s.suppression.TryAcquire(ctx, provider, s.cooldown)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", provider).Msg("alert cooldown check failed")
		return
	}
	if !acquired {
		return
	}

	s.log.Error().
		Str("provider", provider).
		Str("reason", report.Reason).
		Msg("webhook pipeline unhealthy")

	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendAlert(ctx, report); err != nil {
		s.log.Warn().Err(err).Str("provider", provider).Msg("failed to send health alert")
	}
}
