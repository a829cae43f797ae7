package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolated(t *testing.T) {
	// separate registries never collide
	a := NewMetrics()
	b := NewMetrics()

	a.RecordWindowOp("open", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.WindowsOpen))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.WindowsOpen))
}

func TestWindowOps(t *testing.T) {
	m := NewMetrics()

	m.RecordWindowOp("open", 1)
	m.RecordWindowOp("open", 1)
	m.RecordWindowOp("close", -1)
	m.RecordWindowOp("focus", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WindowOps.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WindowsOpen))
	assert.Equal(t, int64(1), m.Snapshot().OpenWindows)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/sessions/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/sessions/a", "/sessions/b", "/nope"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordOverlayOpen("spotlight")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `desktop_overlay_transitions_total{overlay="spotlight"} 1`)
}
