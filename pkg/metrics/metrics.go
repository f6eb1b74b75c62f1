package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector bundles the Prometheus metrics the service exposes.
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	paymentInitiations *prometheus.CounterVec
	paymentCallbacks   *prometheus.CounterVec

	emailsDispatched *prometheus.CounterVec
	outboxPending    prometheus.Gauge
}

var (
	global     *Collector
	globalOnce sync.Once
)

// GetCollector returns the process-wide collector, registering the
// metrics on first use.
func GetCollector() *Collector {
	globalOnce.Do(func() {
		global = &Collector{
			httpRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "endpoint", "status"},
			),
			httpRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "endpoint"},
			),
			paymentInitiations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mpesa_stk_push_total",
					Help: "STK push initiations by outcome",
				},
				[]string{"outcome"},
			),
			paymentCallbacks: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "mpesa_callbacks_total",
					Help: "Gateway callbacks by result",
				},
				[]string{"result"},
			),
			emailsDispatched: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "emails_dispatched_total",
					Help: "Outbox emails dispatched by outcome",
				},
				[]string{"kind", "outcome"},
			),
			outboxPending: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "email_outbox_pending",
					Help: "Emails currently pending in the outbox",
				},
			),
		}
	})
	return global
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordPaymentInitiation records an STK push attempt outcome
// ("accepted", "rejected").
func (c *Collector) RecordPaymentInitiation(outcome string) {
	c.paymentInitiations.WithLabelValues(outcome).Inc()
}

// RecordPaymentCallback records a processed callback
// ("success", "failed", "ignored", "error").
func (c *Collector) RecordPaymentCallback(result string) {
	c.paymentCallbacks.WithLabelValues(result).Inc()
}

// RecordEmailDispatched records one outbox dispatch attempt.
func (c *Collector) RecordEmailDispatched(kind, outcome string) {
	c.emailsDispatched.WithLabelValues(kind, outcome).Inc()
}

// SetOutboxPending updates the pending-email gauge.
func (c *Collector) SetOutboxPending(n int) {
	c.outboxPending.Set(float64(n))
}
