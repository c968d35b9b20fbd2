// Package metrics provides Prometheus metrics for the hotel API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

// Metrics holds all Prometheus metrics.
type Metrics struct {
	reg      prometheus.Registerer
	gatherer prometheus.Gatherer

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	bookingsTotal    *prometheus.CounterVec
	cancellations    prometheus.Counter
}

// New registers the metrics on a fresh registry that also carries the Go
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg:      reg,
		gatherer: gatherer,
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		requestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		bookingsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_attempts_total",
				Help:      "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		cancellations: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservations_cancelled_total",
				Help:      "Reservations cancelled",
			},
		),
	}
}

func (m *Metrics) BookingAttempt(outcome string) {
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ReservationCancelled() {
	m.cancellations.Inc()
}

// WatchSubscribers exposes the live websocket subscriber count.
func (m *Metrics) WatchSubscribers(count func() int) {
	promauto.With(m.reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_subscribers",
			Help:      "Open websocket subscriptions to the reservation feed",
		},
		func() float64 { return float64(count()) },
	)
}

// Middleware records request count, latency and in-flight requests. Paths
// are the matched route templates to keep label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
