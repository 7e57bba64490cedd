package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prompttoproduct-dev/concertcalendar/internal/webhook"
)

type WebhookHandler struct {
	proc *webhook.Processor
}

func NewWebhookHandler(proc *webhook.Processor) *WebhookHandler {
	return &WebhookHandler{proc: proc}
}

// POST /webhooks/ticketmaster
func (h *WebhookHandler) Ticketmaster(c *gin.Context) {
	h.handle(c, h.proc.HandleTicketmaster)
}

// POST /webhooks/eventbrite
func (h *WebhookHandler) Eventbrite(c *gin.Context) {
	h.handle(c, h.proc.HandleEventbrite)
}

func (h *WebhookHandler) handle(c *gin.Context, process func(ctx context.Context, raw []byte, headers map[string]string, clientIP string) webhook.Result) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload format"})
		return
	}

	result := process(c.Request.Context(), raw, flattenHeaders(c.Request.Header), ClientIP(c))
	if result.Success {
		c.JSON(http.StatusOK, gin.H{"message": result.Message})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": result.Message})
}

// flattenHeaders lowercases header names and keeps the first value,
// matching the case-insensitive transport against the validator's
// lowercase required-header list.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[strings.ToLower(k)] = v[0]
		}
	}
	return out
}
