package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
	"github.com/prompttoproduct-dev/concertcalendar/internal/scheduler"
)

// AdminHandler exposes manual control of the sync job and passthrough
// access to the provider taxonomies used for sync tuning.
type AdminHandler struct {
	manager *scheduler.Manager
	tm      *providers.TicketmasterClient
	eb      *providers.EventbriteClient
}

func NewAdminHandler(manager *scheduler.Manager, tm *providers.TicketmasterClient, eb *providers.EventbriteClient) *AdminHandler {
	return &AdminHandler{manager: manager, tm: tm, eb: eb}
}

// POST /v1/admin/sync — run one sync pass and return its summary.
func (h *AdminHandler) TriggerSync(c *gin.Context) {
	result := h.manager.RunOnce(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// GET /v1/admin/sync/status
func (h *AdminHandler) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Status())
}

// GET /v1/admin/providers/genres — Ticketmaster's genre classification
// tree, for picking a genreId in the sync tuning file.
func (h *AdminHandler) ProviderGenres(c *gin.Context) {
	if h.tm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ticketmaster is not configured"})
		return
	}
	out, err := h.tm.Genres(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "genre lookup failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/admin/providers/categories — Eventbrite's category list.
func (h *AdminHandler) ProviderCategories(c *gin.Context) {
	if h.eb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "eventbrite is not configured"})
		return
	}
	out, err := h.eb.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "category lookup failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}
