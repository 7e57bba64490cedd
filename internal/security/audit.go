package security

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
)

const maxPayloadSummary = 1000

// SecurityEventStore persists audit records. Only high/critical events
// reach it.
type SecurityEventStore interface {
	Insert(ctx context.Context, ev *domain.SecurityEvent) error
}

// AuditLogger records security-relevant events. Every event is written
// to the operational log; persistence failures are swallowed so the
// audit trail can never block request handling.
type AuditLogger struct {
	log    *logrus.Logger
	events SecurityEventStore
}

func NewAuditLogger(log *logrus.Logger, events SecurityEventStore) *AuditLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuditLogger{log: log, events: events}
}

// LogSecurityEvent fills defaults, redacts the payload summary and logs
// the event. High and critical events are also persisted.
func (a *AuditLogger) LogSecurityEvent(ctx context.Context, ev domain.SecurityEvent) {
	if ev.EventType == "" {
		ev.EventType = domain.EventWebhookReceived
	}
	if ev.Severity == "" {
		ev.Severity = domain.SeverityLow
	}
	if ev.Source == "" {
		ev.Source = "unknown"
	}
	if ev.ClientIP == "" {
		ev.ClientIP = "unknown"
	}
	ev.PayloadSummary = sanitizeSummary(ev.PayloadSummary)
	ev.CreatedAt = time.Now().UTC()

	a.log.WithFields(logrus.Fields{
		"event_type": ev.EventType,
		"source":     ev.Source,
		"client_ip":  ev.ClientIP,
		"severity":   ev.Severity,
	}).Info("security event")

	if ev.Severity != domain.SeverityHigh && ev.Severity != domain.SeverityCritical {
		return
	}
	if a.events == nil {
		return
	}
	if err := a.events.Insert(ctx, &ev); err != nil {
		a.log.WithError(err).Error("persist security event")
	}
}

// sanitizeSummary runs every summary through redaction and truncation
// before it is logged or stored. JSON object summaries get their
// sensitive keys dropped; anything else is just length-capped.
func sanitizeSummary(s string) string {
	if s == "" {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err == nil {
		return SummarizePayload(payload)
	}
	if len(s) > maxPayloadSummary {
		return s[:maxPayloadSummary] + "...[truncated]"
	}
	return s
}

// SummarizePayload redacts sensitive keys and truncates the serialized
// result for storage alongside an audit record.
func SummarizePayload(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	sanitized := make(map[string]any, len(payload))
	for k, v := range payload {
		sanitized[k] = v
	}
	for _, f := range sensitiveFields {
		delete(sanitized, f)
	}
	b, err := json.Marshal(sanitized)
	if err != nil {
		return ""
	}
	if len(b) > maxPayloadSummary {
		return string(b[:maxPayloadSummary]) + "...[truncated]"
	}
	return string(b)
}

func (a *AuditLogger) WebhookReceived(ctx context.Context, source, clientIP, userAgent string) {
	a.LogSecurityEvent(ctx, domain.SecurityEvent{
		EventType: domain.EventWebhookReceived,
		Source:    source,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Severity:  domain.SeverityLow,
	})
}

func (a *AuditLogger) InvalidSignature(ctx context.Context, source, clientIP, userAgent string) {
	a.LogSecurityEvent(ctx, domain.SecurityEvent{
		EventType: domain.EventInvalidSignature,
		Source:    source,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Severity:  domain.SeverityHigh,
	})
}

func (a *AuditLogger) RateLimitExceeded(ctx context.Context, clientIP, userAgent string) {
	a.LogSecurityEvent(ctx, domain.SecurityEvent{
		EventType: domain.EventRateLimitExceeded,
		Source:    "api",
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Severity:  domain.SeverityMedium,
	})
}

func (a *AuditLogger) ValidationFailed(ctx context.Context, source, clientIP, detail string) {
	a.LogSecurityEvent(ctx, domain.SecurityEvent{
		EventType:      domain.EventValidationFailed,
		Source:         source,
		ClientIP:       clientIP,
		PayloadSummary: detail,
		Severity:       domain.SeverityMedium,
	})
}
