package webhook

import (
	"context"
	"log"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
	"github.com/prompttoproduct-dev/concertcalendar/internal/metrics"
	"github.com/prompttoproduct-dev/concertcalendar/internal/notify"
	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
	"github.com/prompttoproduct-dev/concertcalendar/internal/security"
)

// ConcertStore is the slice of the repository the webhook pipeline
// needs: reconcile a record, or drop it on an explicit cancel.
type ConcertStore interface {
	Upsert(ctx context.Context, in providers.ExternalConcert) error
	DeleteByExternal(ctx context.Context, externalID string, source domain.Source) error
}

// Result is the handler's terminal state. Message is safe to return to
// the caller; rejection reasons are distinguishable but never leak
// signature or configuration detail.
type Result struct {
	Success bool
	Message string
}

const (
	msgProcessed        = "Webhook processed successfully"
	msgRateLimited      = "Rate limit exceeded"
	msgMissingHeaders   = "Missing required headers"
	msgInvalidSignature = "Invalid webhook signature"
	msgInvalidPayload   = "Invalid payload format"
)

// Processor runs the fixed per-request pipeline: audit receipt → rate
// limit → header presence → signature → schema validation → dispatch.
// Any failed check short-circuits with a specific rejection message.
type Processor struct {
	limiter   security.Limiter
	audit     *security.AuditLogger
	secrets   *security.SecretStore
	store     ConcertStore
	broadcast notify.Broadcaster
}

func NewProcessor(limiter security.Limiter, audit *security.AuditLogger, secrets *security.SecretStore, store ConcertStore, broadcast notify.Broadcaster) *Processor {
	if broadcast == nil {
		broadcast = notify.NopBroadcaster{}
	}
	return &Processor{limiter: limiter, audit: audit, secrets: secrets, store: store, broadcast: broadcast}
}

// HandleTicketmaster processes one Ticketmaster push.
func (p *Processor) HandleTicketmaster(ctx context.Context, raw []byte, headers map[string]string, clientIP string) Result {
	provider := string(domain.SourceTicketmaster)
	p.audit.WebhookReceived(ctx, provider, clientIP, headers["user-agent"])

	if p.limiter.IsLimited(clientIP) {
		p.audit.RateLimitExceeded(ctx, clientIP, headers["user-agent"])
		metrics.RateLimited.Inc()
		return p.reject(provider, msgRateLimited)
	}
	if !security.ValidWebhookHeaders(headers, provider) {
		return p.reject(provider, msgMissingHeaders)
	}

	secret, err := p.secrets.SecureKey("TICKETMASTER_WEBHOOK_SECRET")
	if err != nil {
		log.Printf("[webhook] ticketmaster secret: %v", err)
		return p.reject(provider, msgInvalidSignature)
	}
	if !security.ValidTicketmasterSignature(raw, headers["x-ticketmaster-signature"], secret) {
		p.audit.InvalidSignature(ctx, provider, clientIP, headers["user-agent"])
		return p.reject(provider, msgInvalidSignature)
	}

	payload, err := security.ParseTicketmasterWebhook(raw)
	if err != nil {
		p.audit.ValidationFailed(ctx, provider, clientIP, err.Error())
		return p.reject(provider, msgInvalidPayload)
	}

	switch payload.EventType {
	case "event.created":
		if err := p.upsertAndNotify(ctx, payload.Data, true); err != nil {
			return p.fail(provider, err)
		}
	case "event.updated":
		if err := p.upsertAndNotify(ctx, payload.Data, false); err != nil {
			return p.fail(provider, err)
		}
	case "event.cancelled":
		if err := p.store.DeleteByExternal(ctx, payload.Data.ID, domain.SourceTicketmaster); err != nil {
			return p.fail(provider, err)
		}
	}

	metrics.WebhooksTotal.WithLabelValues(provider, "accepted").Inc()
	return Result{Success: true, Message: msgProcessed}
}

// HandleEventbrite processes one Eventbrite push.
func (p *Processor) HandleEventbrite(ctx context.Context, raw []byte, headers map[string]string, clientIP string) Result {
	provider := string(domain.SourceEventbrite)
	p.audit.WebhookReceived(ctx, provider, clientIP, headers["user-agent"])

	if p.limiter.IsLimited(clientIP) {
		p.audit.RateLimitExceeded(ctx, clientIP, headers["user-agent"])
		metrics.RateLimited.Inc()
		return p.reject(provider, msgRateLimited)
	}
	if !security.ValidWebhookHeaders(headers, provider) {
		return p.reject(provider, msgMissingHeaders)
	}

	secret, err := p.secrets.SecureKey("EVENTBRITE_WEBHOOK_SECRET")
	if err != nil {
		log.Printf("[webhook] eventbrite secret: %v", err)
		return p.reject(provider, msgInvalidSignature)
	}
	if !security.ValidEventbriteSignature(raw, headers["x-eventbrite-signature"], secret) {
		p.audit.InvalidSignature(ctx, provider, clientIP, headers["user-agent"])
		return p.reject(provider, msgInvalidSignature)
	}

	payload, err := security.ParseEventbriteWebhook(raw)
	if err != nil {
		p.audit.ValidationFailed(ctx, provider, clientIP, err.Error())
		return p.reject(provider, msgInvalidPayload)
	}

	concert, err := providers.TransformEventbriteEvent(payload.Config.Object)
	if err != nil {
		p.audit.ValidationFailed(ctx, provider, clientIP, err.Error())
		return p.reject(provider, msgInvalidPayload)
	}
	created := payload.EventType() == "event.created"
	if err := p.upsertConcert(ctx, concert, created); err != nil {
		return p.fail(provider, err)
	}

	metrics.WebhooksTotal.WithLabelValues(provider, "accepted").Inc()
	return Result{Success: true, Message: msgProcessed}
}

func (p *Processor) upsertAndNotify(ctx context.Context, event providers.TicketmasterEvent, created bool) error {
	concert, err := providers.TransformTicketmasterEvent(event)
	if err != nil {
		return err
	}
	return p.upsertConcert(ctx, concert, created)
}

func (p *Processor) upsertConcert(ctx context.Context, concert providers.ExternalConcert, created bool) error {
	if err := p.store.Upsert(ctx, concert); err != nil {
		return err
	}
	metrics.ConcertsUpserted.WithLabelValues(string(concert.Source)).Inc()
	if !created {
		return nil
	}
	// best-effort: a failed broadcast never fails the request
	err := p.broadcast.NewConcert(ctx, notify.NewConcert{
		Artist: concert.Artist,
		Date:   concert.Date,
		Genres: concert.Genres,
		Price:  concert.Price,
	})
	if err != nil {
		log.Printf("[webhook] broadcast new concert: %v", err)
	}
	return nil
}

func (p *Processor) reject(provider, message string) Result {
	metrics.WebhooksTotal.WithLabelValues(provider, "rejected").Inc()
	return Result{Success: false, Message: message}
}

func (p *Processor) fail(provider string, err error) Result {
	log.Printf("[webhook] %s processing error: %v", provider, err)
	metrics.WebhooksTotal.WithLabelValues(provider, "error").Inc()
	return Result{Success: false, Message: err.Error()}
}
