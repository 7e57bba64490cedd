package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
	"github.com/prompttoproduct-dev/concertcalendar/internal/repository"
	"github.com/prompttoproduct-dev/concertcalendar/internal/security"
)

// CatalogHandler serves the read API the frontend consumes: search,
// calendar and borough browsing.
type CatalogHandler struct {
	concerts *repository.ConcertRepo
	venues   *repository.VenueRepo
	audit    *security.AuditLogger
}

func NewCatalogHandler(concerts *repository.ConcertRepo, venues *repository.VenueRepo, audit *security.AuditLogger) *CatalogHandler {
	return &CatalogHandler{concerts: concerts, venues: venues, audit: audit}
}

// GET /v1/concerts?q=&genre=&borough=&price_range=&from=&to=&page=&page_size=
func (h *CatalogHandler) Search(c *gin.Context) {
	var q security.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := q.Validate(); err != nil {
		h.audit.LogSecurityEvent(c.Request.Context(), domain.SecurityEvent{
			EventType:      domain.EventSuspiciousQuery,
			Source:         "api",
			ClientIP:       ClientIP(c),
			PayloadSummary: err.Error(),
			Severity:       domain.SeverityMedium,
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	borough := domain.Borough(c.Query("borough"))
	if borough != "" && !domain.ValidBorough(borough) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borough"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := domain.ConcertFilter{
		Query:      q.Query,
		Genre:      q.Genre,
		Borough:    borough,
		PriceRange: q.PriceRange,
		FromDate:   c.Query("from"),
		ToDate:     c.Query("to"),
		Page:       int32(q.Page),
		PageSize:   int32(size),
	}
	concerts, total, err := h.concerts.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"concerts": concerts, "total": total, "page": q.Page, "page_size": size})
}

// GET /v1/concerts/calendar?year=2025&month=9
func (h *CatalogHandler) Calendar(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(time.Now().Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	concerts, err := h.concerts.ByMonth(c.Request.Context(), year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calendar lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"concerts": concerts, "year": year, "month": month})
}

// GET /v1/venues?borough=&page=&page_size=
func (h *CatalogHandler) Venues(c *gin.Context) {
	borough := domain.Borough(c.Query("borough"))
	if borough != "" && !domain.ValidBorough(borough) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borough"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	venues, err := h.venues.List(c.Request.Context(), borough, int32(page), int32(size))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "venue lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

// GET /v1/boroughs
func (h *CatalogHandler) Boroughs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"boroughs": domain.Boroughs()})
}
