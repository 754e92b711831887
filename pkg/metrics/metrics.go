package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	bookingsCreatedTotal   prometheus.Counter
	bookingConflictsTotal  prometheus.Counter
	bookingsCancelledTotal prometheus.Counter
	paymentsSettledTotal   *prometheus.CounterVec
	txRetriesTotal         prometheus.Counter
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		bookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: constLabels,
		}),

		bookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Total number of booking attempts rejected due to slot conflict",
			ConstLabels: constLabels,
		}),

		bookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled",
			ConstLabels: constLabels,
		}),

		paymentsSettledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_settled_total",
			Help:        "Total number of payments settled by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		txRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "tx_serialization_retries_total",
			Help:        "Total number of serializable transaction retries",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest учитывает завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) IncBookingsCreated() {
	m.bookingsCreatedTotal.Inc()
}

func (m *Metrics) IncBookingConflicts() {
	m.bookingConflictsTotal.Inc()
}

func (m *Metrics) IncBookingsCancelled() {
	m.bookingsCancelledTotal.Inc()
}

func (m *Metrics) IncPaymentsSettled(outcome string) {
	m.paymentsSettledTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncTxRetries() {
	m.txRetriesTotal.Inc()
}
