package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec

	AggregationRunsTotal *prometheus.CounterVec
	AggregationDuration  *prometheus.HistogramVec
	OccupiedSeats        *prometheus.GaugeVec

	SeatFeedMessagesTotal *prometheus.CounterVec

	serviceName string
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),
		AggregationRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "occupancy_aggregation_runs_total",
			Help: "Number of aggregation runs by kind and result",
		}, []string{"service", "kind", "result"}),
		AggregationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "occupancy_aggregation_duration_seconds",
			Help:    "Aggregation run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "kind"}),
		OccupiedSeats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "seats_occupied",
			Help: "Number of currently occupied seats",
		}, []string{"service"}),
		SeatFeedMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seat_feed_messages_total",
			Help: "Seat feed messages by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.AggregationRunsTotal,
		m.AggregationDuration,
		m.OccupiedSeats,
		m.SeatFeedMessagesTotal,
	)

	return m
}

// Методы ниже безопасны для nil: при выключенных метриках передаётся nil *Metrics

// ObserveAggregation учитывает прогон агрегации kind (day/week) с результатом result
func (m *Metrics) ObserveAggregation(kind, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.AggregationRunsTotal.WithLabelValues(m.serviceName, kind, result).Inc()
	m.AggregationDuration.WithLabelValues(m.serviceName, kind).Observe(d.Seconds())
}

// SetOccupiedSeats выставляет число занятых мест
func (m *Metrics) SetOccupiedSeats(n int) {
	if m == nil {
		return
	}
	m.OccupiedSeats.WithLabelValues(m.serviceName).Set(float64(n))
}

// IncSeatFeed учитывает сообщение из очереди детектора
func (m *Metrics) IncSeatFeed(result string) {
	if m == nil {
		return
	}
	m.SeatFeedMessagesTotal.WithLabelValues(m.serviceName, result).Inc()
}
