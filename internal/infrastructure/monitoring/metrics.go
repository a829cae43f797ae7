package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WebSocket message directions
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Shell metrics
	SessionsActive     prometheus.Gauge
	WindowsOpen        prometheus.Gauge
	WindowOps          *prometheus.CounterVec
	OverlayTransitions *prometheus.CounterVec
	DragSessions       prometheus.Counter

	// Persona store metrics
	PersonaFetches *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time
	snapshot  Snapshot
	mu        sync.RWMutex
}

// Snapshot holds current values for the JSON stats endpoint
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveSessions    int64   `json:"active_sessions"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "desktop_sessions_active",
			Help: "Number of live shell sessions",
		}),
		WindowsOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "desktop_windows_open",
			Help: "Number of open windows across sessions",
		}),
		WindowOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_ops_total",
				Help: "Window registry operations that changed state",
			},
			[]string{"op"},
		),
		OverlayTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_overlay_transitions_total",
				Help: "Overlays opened, by kind",
			},
			[]string{"overlay"},
		),
		DragSessions: f.NewCounter(prometheus.CounterOpts{
			Name: "desktop_drag_sessions_total",
			Help: "Window drags started",
		}),

		PersonaFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_persona_fetch_total",
				Help: "Persona palette lookups, by outcome",
			},
			[]string{"status"},
		),

		WSConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "desktop_ws_connections",
			Help: "Number of active WebSocket connections",
		}),
		WSMessages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	return m
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp counts a window operation and tracks the open gauge
func (m *Metrics) RecordWindowOp(op string, openDelta int) {
	m.WindowOps.WithLabelValues(op).Inc()
	if openDelta != 0 {
		m.AddWindowsOpen(openDelta)
	}
}

// AddWindowsOpen adjusts the open windows gauge
func (m *Metrics) AddWindowsOpen(delta int) {
	m.WindowsOpen.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.OpenWindows += int64(delta)
	m.mu.Unlock()
}

// RecordOverlayOpen counts an overlay opening
func (m *Metrics) RecordOverlayOpen(overlay string) {
	m.OverlayTransitions.WithLabelValues(overlay).Inc()
}

// IncDragSessions counts a drag start
func (m *Metrics) IncDragSessions() {
	m.DragSessions.Inc()
}

// RecordPersonaFetch counts a palette lookup outcome
func (m *Metrics) RecordPersonaFetch(status string) {
	m.PersonaFetches.WithLabelValues(status).Inc()
}

// SetSessionsActive sets the number of live sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveSessions = int64(count)
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON stats endpoint
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
