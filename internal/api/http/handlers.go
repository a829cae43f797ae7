package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions  *session.Manager
	catalog   *catalog.Catalog
	metrics   *monitoring.Metrics
	startTime time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(sessions *session.Manager, cat *catalog.Catalog, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		sessions:  sessions,
		catalog:   cat,
		metrics:   metrics,
		startTime: time.Now(),
	}
}

// Root handles the root endpoint
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "AgentOS Desktop Shell (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Len(),
		"apps":     len(h.catalog.Apps()),
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Stats returns a JSON view of the service counters
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// Catalog lists the apps and desktop items each session starts with
func (h *Handlers) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":    h.catalog.Apps(),
		"desktop": h.catalog.Items(),
	})
}

// Search ranks catalog apps for a query without touching any session
func (h *Handlers) Search(c *gin.Context) {
	q := c.Query("q")
	results := h.catalog.Search(q, 0)
	if results == nil {
		results = []catalog.App{}
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"results": results,
	})
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)

	r.GET("/catalog", h.Catalog)
	r.GET("/catalog/search", h.Search)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.POST("/sessions/:id/events", h.PostEvent)

	r.GET("/sessions/:id/windows", h.ListWindows)
	r.POST("/sessions/:id/windows", h.OpenWindow)
	r.POST("/sessions/:id/windows/:wid/focus", h.FocusWindow)
	r.POST("/sessions/:id/windows/:wid/minimize", h.MinimizeWindow)
	r.POST("/sessions/:id/windows/:wid/restore", h.RestoreWindow)
	r.DELETE("/sessions/:id/windows/:wid", h.CloseWindow)
}
