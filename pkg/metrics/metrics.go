package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
// Методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	ReservationsCreated  *prometheus.CounterVec
	ReservationConflicts *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		ReservationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total number of created reservations",
		}, []string{"service", "assignment"}),

		ReservationConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_conflicts_total",
			Help: "Total number of rejected reservation writes due to table conflicts",
		}, []string{"service", "operation"}),
	}
}

// ServiceName возвращает имя сервиса для лейблов
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.service
}

// ReservationCreated учитывает созданное бронирование
// assignment: "table", "auto" или "unassigned"
func (m *Metrics) ReservationCreated(assignment string) {
	if m == nil {
		return
	}
	m.ReservationsCreated.WithLabelValues(m.service, assignment).Inc()
}

// ReservationConflict учитывает отклонённую запись из-за конфликта по столу
func (m *Metrics) ReservationConflict(operation string) {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(m.service, operation).Inc()
}
