package notify

import (
	"context"

	"github.com/prompttoproduct-dev/concertcalendar/pkg/mq"
)

// Broadcaster pushes new-concert announcements to live subscribers.
// Callers treat it as best-effort: a failed broadcast is logged by the
// caller and never fails the originating request.
type Broadcaster interface {
	NewConcert(ctx context.Context, ev NewConcert) error
}

// MQBroadcaster publishes to the concert topic exchange.
type MQBroadcaster struct {
	pub *mq.Publisher
}

func NewMQBroadcaster(pub *mq.Publisher) *MQBroadcaster {
	return &MQBroadcaster{pub: pub}
}

func (b *MQBroadcaster) NewConcert(ctx context.Context, ev NewConcert) error {
	return b.pub.PublishJSON(ctx, RKConcertCreated, ev)
}

// NopBroadcaster is used when no message broker is configured.
type NopBroadcaster struct{}

func (NopBroadcaster) NewConcert(context.Context, NewConcert) error { return nil }
