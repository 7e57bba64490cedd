package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/prompttoproduct-dev/concertcalendar/internal/notify"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/config"
	"github.com/prompttoproduct-dev/concertcalendar/pkg/mq"
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
	if cfg.RabbitURL == "" {
		log.Fatal("RABBIT_URL is required for the notify worker")
	}

	consumer := must(mq.NewConsumer(cfg.RabbitURL, cfg.ConcertExchange, cfg.NotifyQueue,
		[]string{notify.RKConcertCreated}, 8))
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("[notify] consuming from", cfg.NotifyQueue)
	worker := notify.NewConsumer(consumer, notify.NewConsole())
	if err := worker.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
