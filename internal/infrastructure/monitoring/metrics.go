package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus metrics. It implements the
// panel coordinator's metrics sink.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Panel structure metrics
	TabsActive  prometheus.Gauge
	PanesActive prometheus.Gauge
	SplitsTotal *prometheus.CounterVec
	DropsTotal  *prometheus.CounterVec

	// Session lifecycle metrics
	SessionsStarted prometheus.Counter
	SessionsExited  prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector registered on the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector registered on reg. Tests
// pass a fresh registry so collectors never collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_panel_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "terminal_panel_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "terminal_panel_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		TabsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "terminal_panel_tabs_active",
				Help: "Number of open tabs",
			},
		),
		PanesActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "terminal_panel_panes_active",
				Help: "Number of panes across all tabs",
			},
		),
		SplitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_panel_splits_total",
				Help: "Total number of pane splits",
			},
			[]string{"axis"},
		),
		DropsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_panel_drops_total",
				Help: "Total number of handled tab drops",
			},
			[]string{"zone"},
		),

		SessionsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "terminal_panel_sessions_started_total",
				Help: "Total number of shell sessions started",
			},
		),
		SessionsExited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "terminal_panel_sessions_exited_total",
				Help: "Total number of shell sessions that exited on their own",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "terminal_panel_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terminal_panel_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "terminal_panel_uptime_seconds",
				Help: "Engine uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records one handled HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordWSMessage records a WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// PanelChanged records the panel's current tab and pane counts.
func (m *Metrics) PanelChanged(tabs, panes int) {
	m.TabsActive.Set(float64(tabs))
	m.PanesActive.Set(float64(panes))
}

// SplitCreated counts a pane split on the given axis.
func (m *Metrics) SplitCreated(axis string) {
	m.SplitsTotal.WithLabelValues(axis).Inc()
}

// DropHandled counts a handled drop by zone.
func (m *Metrics) DropHandled(zone string) {
	m.DropsTotal.WithLabelValues(zone).Inc()
}

// SessionStarted counts a shell session start.
func (m *Metrics) SessionStarted() {
	m.SessionsStarted.Inc()
}

// SessionExited counts a shell session that ended on its own.
func (m *Metrics) SessionExited() {
	m.SessionsExited.Inc()
}
