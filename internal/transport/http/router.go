package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps collects everything the router wires together.
type Deps struct {
	Webhooks  *WebhookHandler
	Catalog   *CatalogHandler
	Admin     *AdminHandler
	JWTSecret string
}

// NewRouter builds the full HTTP surface: webhook endpoints, catalog
// read API, admin controls, health and metrics.
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(SecurityHeaders())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/webhooks/ticketmaster", d.Webhooks.Ticketmaster)
	r.POST("/webhooks/eventbrite", d.Webhooks.Eventbrite)

	v1 := r.Group("/v1")
	{
		v1.GET("/concerts", d.Catalog.Search)
		v1.GET("/concerts/calendar", d.Catalog.Calendar)
		v1.GET("/venues", d.Catalog.Venues)
		v1.GET("/boroughs", d.Catalog.Boroughs)

		if d.Admin != nil && d.JWTSecret != "" {
			admin := v1.Group("/admin")
			admin.Use(JWTAuth(d.JWTSecret), RequireRole("ADMIN"))
			admin.POST("/sync", d.Admin.TriggerSync)
			admin.GET("/sync/status", d.Admin.SyncStatus)
			admin.GET("/providers/genres", d.Admin.ProviderGenres)
			admin.GET("/providers/categories", d.Admin.ProviderCategories)
		}
	}

	return r
}
