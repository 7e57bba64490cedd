package notify

import (
	"fmt"
	"log"
	"strings"
)

// Notifier delivers a human-readable announcement. The console
// implementation is the MVP; email/push fit behind the same interface.
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}

// FormatNewConcert renders the broadcast for human consumption.
func FormatNewConcert(ev NewConcert) string {
	msg := fmt.Sprintf("%s on %s", ev.Artist, ev.Date)
	if len(ev.Genres) > 0 {
		msg += " (" + strings.Join(ev.Genres, ", ") + ")"
	}
	if ev.Price != "" {
		msg += " - " + ev.Price
	}
	return msg
}
