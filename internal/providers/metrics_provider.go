package providers

import (
	"donosync/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncFramesTotal(kind string)
	IncDecodeErrors()
	IncReconnectAttempts()
	SetConnectionStatus(status string)
	ObserveHeartbeatRTT(duration time.Duration)
	IncCelebrations()
	IncSpotlightExpirations()
}

var connectionStatuses = []string{"connecting", "open", "closed"}

type MetricsProvider struct {
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	framesTotal          *prometheus.CounterVec
	decodeErrors         prometheus.Counter
	reconnectAttempts    prometheus.Counter
	connectionStatus     *prometheus.GaugeVec
	heartbeatRTT         prometheus.Histogram
	celebrations         prometheus.Counter
	spotlightExpirations prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncFramesTotal(kind string) {
	m.framesTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncDecodeErrors() {
	m.decodeErrors.Inc()
}

func (m *MetricsProvider) IncReconnectAttempts() {
	m.reconnectAttempts.Inc()
}

// SetConnectionStatus sets the gauge of the given status to 1 and all others to 0.
func (m *MetricsProvider) SetConnectionStatus(status string) {
	for _, s := range connectionStatuses {
		v := 0.0
		if s == status {
			v = 1
		}
		m.connectionStatus.WithLabelValues(s).Set(v)
	}
}

func (m *MetricsProvider) ObserveHeartbeatRTT(duration time.Duration) {
	m.heartbeatRTT.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCelebrations() {
	m.celebrations.Inc()
}

func (m *MetricsProvider) IncSpotlightExpirations() {
	m.spotlightExpirations.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "donosync_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "donosync_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donosync_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donosync_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		framesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "donosync_frames_total",
			Help: "Inbound stream frames by kind",
		}, []string{"kind"}),

		decodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donosync_decode_errors_total",
			Help: "Frames dropped because they could not be decoded",
		}),

		reconnectAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donosync_reconnect_attempts_total",
			Help: "Total number of reconnect attempts",
		}),

		connectionStatus: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "donosync_connection_status",
			Help: "Current stream connection status (1 for the active status)",
		}, []string{"status"}),

		heartbeatRTT: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "donosync_heartbeat_rtt_seconds",
			Help:    "Time between a heartbeat probe and the next inbound frame",
			Buckets: prometheus.DefBuckets,
		}),

		celebrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donosync_celebrations_total",
			Help: "Number of times the spotlight was set to a celebration",
		}),

		spotlightExpirations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donosync_spotlight_expirations_total",
			Help: "Number of times the spotlight expired on its own",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncFramesTotal(_ string)                          {}
func (n *noopMetrics) IncDecodeErrors()                                 {}
func (n *noopMetrics) IncReconnectAttempts()                            {}
func (n *noopMetrics) SetConnectionStatus(_ string)                     {}
func (n *noopMetrics) ObserveHeartbeatRTT(_ time.Duration)              {}
func (n *noopMetrics) IncCelebrations()                                 {}
func (n *noopMetrics) IncSpotlightExpirations()                         {}
