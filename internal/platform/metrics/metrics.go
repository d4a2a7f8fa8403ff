package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "petcare"

// Metrics agrupa los instrumentos de la app sobre un registry propio.
// Todos los métodos toleran receiver nil (metrics deshabilitadas).
type Metrics struct {
	registry *prometheus.Registry

	gatewayOps      *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec
	statusFallbacks prometheus.Counter
	logsWritten     *prometheus.CounterVec
	sessionResets   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		gatewayOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_operations_total",
			Help:      "Storage gateway operations by document, operation and result.",
		}, []string{"document", "op", "result"}),
		gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_operation_seconds",
			Help:      "Latency of remote document store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"document", "op"}),
		statusFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_fallbacks_total",
			Help:      "Today status computations that fell back to the empty status.",
		}),
		logsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "care_logs_written_total",
			Help:      "Care log writes by operation.",
		}, []string{"op"}),
		sessionResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_resets_total",
			Help:      "Cache resets forced by authorization expiry.",
		}),
	}

	reg.MustRegister(
		m.gatewayOps,
		m.gatewayLatency,
		m.statusFallbacks,
		m.logsWritten,
		m.sessionResets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveGatewayOp(document, op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.gatewayOps.WithLabelValues(document, op, result).Inc()
	m.gatewayLatency.WithLabelValues(document, op).Observe(d.Seconds())
}

func (m *Metrics) StatusFallback() {
	if m == nil {
		return
	}
	m.statusFallbacks.Inc()
}

func (m *Metrics) CareLogWritten(op string) {
	if m == nil {
		return
	}
	m.logsWritten.WithLabelValues(op).Inc()
}

func (m *Metrics) SessionReset() {
	if m == nil {
		return
	}
	m.sessionResets.Inc()
}
