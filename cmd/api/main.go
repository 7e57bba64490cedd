package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/prompttoproduct-dev/concertcalendar/internal/notify"
	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
	"github.com/prompttoproduct-dev/concertcalendar/internal/repository"
	"github.com/prompttoproduct-dev/concertcalendar/internal/scheduler"
	"github.com/prompttoproduct-dev/concertcalendar/internal/security"
	transport "github.com/prompttoproduct-dev/concertcalendar/internal/transport/http"
	"github.com/prompttoproduct-dev/concertcalendar/internal/webhook"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/config"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/db"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/mq"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()

	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("citysounds-api")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	gdb := must(db.Open(cfg.PGConcertsDSN))

	venues := repository.NewVenueRepo(gdb)
	concerts := repository.NewConcertRepo(gdb, venues)
	events := repository.NewSecurityEventRepo(gdb)
	must(0, venues.Migrate())
	must(0, concerts.Migrate())
	must(0, events.Migrate())

	secrets := security.NewSecretStore(map[string]string{
		"TICKETMASTER_API_KEY":        cfg.TicketmasterAPIKey,
		"EVENTBRITE_API_KEY":          cfg.EventbriteAPIKey,
		"TICKETMASTER_WEBHOOK_SECRET": cfg.TicketmasterWebhookSecret,
		"EVENTBRITE_WEBHOOK_SECRET":   cfg.EventbriteWebhookSecret,
	})
	if cfg.Production() {
		must(0, secrets.RequiredKeys(
			"TICKETMASTER_API_KEY",
			"EVENTBRITE_API_KEY",
			"TICKETMASTER_WEBHOOK_SECRET",
			"EVENTBRITE_WEBHOOK_SECRET",
		))
	}

	audit := security.NewAuditLogger(logrus.StandardLogger(), events)
	limiter := security.NewMemoryLimiter()
	go func() {
		for range time.Tick(30 * time.Minute) {
			limiter.Cleanup()
		}
	}()

	var broadcaster notify.Broadcaster = notify.NopBroadcaster{}
	if cfg.RabbitURL != "" {
		pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.ConcertExchange))
		defer pub.Close()
		broadcaster = notify.NewMQBroadcaster(pub)
	}

	proc := webhook.NewProcessor(limiter, audit, secrets, concerts, broadcaster)

	var (
		fetchers []providers.Fetcher
		tmClient *providers.TicketmasterClient
		ebClient *providers.EventbriteClient
	)
	if cfg.TicketmasterAPIKey != "" {
		tmClient = must(providers.NewTicketmasterClient(cfg.TicketmasterAPIKey))
		fetchers = append(fetchers, tmClient)
	}
	if cfg.EventbriteAPIKey != "" {
		ebClient = must(providers.NewEventbriteClient(cfg.EventbriteAPIKey))
		fetchers = append(fetchers, ebClient)
	}

	syncOpts := must(scheduler.LoadOptions(cfg.SyncConfigPath))
	interval := time.Duration(cfg.SyncIntervalMin) * time.Minute
	if syncOpts.IntervalMinutes > 0 {
		interval = time.Duration(syncOpts.IntervalMinutes) * time.Minute
	}
	manager := scheduler.NewManager(fetchers, concerts, interval, syncOpts.SyncOptions(time.Now()))
	if cfg.EnableSyncJobs || cfg.Production() {
		manager.Start()
	} else {
		log.Print("[api] sync jobs disabled (set ENABLE_SYNC_JOBS=true)")
	}

	router := transport.NewRouter(transport.Deps{
		Webhooks:  transport.NewWebhookHandler(proc),
		Catalog:   transport.NewCatalogHandler(concerts, venues, audit),
		Admin:     transport.NewAdminHandler(manager, tmClient, ebClient),
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Print("[api] shutting down")
		manager.Stop()
		os.Exit(0)
	}()

	log.Println("[api] listening on", cfg.APIHTTPAddr)
	log.Fatal(router.Run(cfg.APIHTTPAddr))
}
