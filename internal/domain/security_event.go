package domain

import "time"

// SecurityEventType classifies audit records.
type SecurityEventType string

const (
	EventWebhookReceived   SecurityEventType = "webhook_received"
	EventInvalidSignature  SecurityEventType = "invalid_signature"
	EventRateLimitExceeded SecurityEventType = "rate_limit_exceeded"
	EventValidationFailed  SecurityEventType = "validation_failed"
	EventSuspiciousQuery   SecurityEventType = "suspicious_query"
)

// Severity orders security events for retention decisions.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SecurityEvent is an audit record. Only high/critical events are
// persisted; everything is written to the operational log.
type SecurityEvent struct {
	ID             string            `gorm:"primaryKey" json:"id"`
	EventType      SecurityEventType `json:"event_type"`
	Source         string            `json:"source"`
	ClientIP       string            `json:"client_ip"`
	UserAgent      string            `json:"user_agent,omitempty"`
	PayloadSummary string            `json:"payload_summary,omitempty"`
	Severity       Severity          `json:"severity"`
	CreatedAt      time.Time         `json:"created_at"`
}
