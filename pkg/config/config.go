package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGConcertsDSN string `envconfig:"PG_CONCERTS_DSN" required:"true"`

	// Provider credentials (required in production; see security.SecretStore)
	TicketmasterAPIKey        string `envconfig:"TICKETMASTER_API_KEY"`
	EventbriteAPIKey          string `envconfig:"EVENTBRITE_API_KEY"`
	TicketmasterWebhookSecret string `envconfig:"TICKETMASTER_WEBHOOK_SECRET"`
	EventbriteWebhookSecret   string `envconfig:"EVENTBRITE_WEBHOOK_SECRET"`

	// Admin API auth
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	// MQ (optional; the new-concert broadcast is skipped when unset)
	RabbitURL       string `envconfig:"RABBIT_URL" default:""`
	ConcertExchange string `envconfig:"CONCERT_EXCHANGE" default:"concert.exchange"`
	NotifyQueue     string `envconfig:"NOTIFY_QUEUE" default:"concert.notify.q"`

	// Sync job
	SyncIntervalMin int    `envconfig:"SYNC_INTERVAL_MIN" default:"60"`
	SyncConfigPath  string `envconfig:"SYNC_CONFIG_PATH" default:""`
	EnableSyncJobs  bool   `envconfig:"ENABLE_SYNC_JOBS" default:"false"`

	// Network / environment
	Env         string `envconfig:"ENV" default:"dev"`
	APIHTTPAddr string `envconfig:"API_HTTP_ADDR" default:":8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// Production reports whether production-only requirements apply (all
// provider keys and webhook secrets must be present at startup).
func (c App) Production() bool {
	return c.Env == "production"
}
