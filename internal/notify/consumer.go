package notify

import (
	"context"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/prompttoproduct-dev/concertcalendar/pkg/mq"
)

// Consumer drains new-concert broadcasts from the concert exchange and
// hands them to a Notifier. Unknown routing keys are acked and skipped.
type Consumer struct {
	mq       *mq.Consumer
	notifier Notifier
}

func NewConsumer(c *mq.Consumer, n Notifier) *Consumer {
	return &Consumer{mq: c, notifier: n}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.mq.Deliveries(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handle(d); err != nil {
				log.Printf("[notify] handle error key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case RKConcertCreated:
		ev, err := MustUnmarshal[NewConcert](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("New Concert", FormatNewConcert(ev))
	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
