package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
	"github.com/prompttoproduct-dev/concertcalendar/internal/repository"
	"github.com/prompttoproduct-dev/concertcalendar/internal/scheduler"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/config"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/db"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	once := flag.Bool("once", false, "run a single sync pass then exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := must(config.Load())

	gdb := must(db.Open(cfg.PGConcertsDSN))
	venues := repository.NewVenueRepo(gdb)
	concerts := repository.NewConcertRepo(gdb, venues)
	must(0, venues.Migrate())
	must(0, concerts.Migrate())

	var fetchers []providers.Fetcher
	if cfg.TicketmasterAPIKey != "" {
		fetchers = append(fetchers, must(providers.NewTicketmasterClient(cfg.TicketmasterAPIKey)))
	}
	if cfg.EventbriteAPIKey != "" {
		fetchers = append(fetchers, must(providers.NewEventbriteClient(cfg.EventbriteAPIKey)))
	}
	if len(fetchers) == 0 {
		log.Fatal("no provider API keys configured")
	}

	opts := must(scheduler.LoadOptions(cfg.SyncConfigPath))
	interval := time.Duration(cfg.SyncIntervalMin) * time.Minute
	if opts.IntervalMinutes > 0 {
		interval = time.Duration(opts.IntervalMinutes) * time.Minute
	}
	manager := scheduler.NewManager(fetchers, concerts, interval, opts.SyncOptions(time.Now()))

	if *once {
		result := manager.RunOnce(context.Background())
		out := must(json.Marshal(result))
		os.Stdout.Write(append(out, '\n'))
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	manager.Start()
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Print("[syncjob] shutting down")
	manager.Stop()
}
