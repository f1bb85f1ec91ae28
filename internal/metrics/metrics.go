package metrics

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const divisor = 100

// Metrics defines all Prometheus metrics for the blog service.
type Metrics struct {
	Registry *prometheus.Registry

	// RED (Rate, Errors, Duration) for HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPRequestDuration  *prometheus.HistogramVec

	// Business metrics
	SubscriptionsCreated     prometheus.Counter
	SubscriptionsReactivated prometheus.Counter
	SubscriptionTransitions  *prometheus.CounterVec // by target status
	SubscribersByStatus      *prometheus.GaugeVec
	PostsCreated             *prometheus.CounterVec // by category
	PostsDeleted             prometheus.Counter

	// Side channels
	CacheOperations *prometheus.CounterVec // by operation, result
	PublishTotal    *prometheus.CounterVec // by routing_key, result
	EmailsTotal     *prometheus.CounterVec // by result

	CronRuns        *prometheus.CounterVec
	CronRunDuration *prometheus.HistogramVec

	ServiceUptime prometheus.Gauge

	BusinessErrors  *prometheus.CounterVec
	TechnicalErrors *prometheus.CounterVec
}

// NewMetrics creates all metrics under namespace in a private registry.
func NewMetrics(namespace string) *Metrics {
	errorLabels := []string{"error_type", "severity"}
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests total",
			},
			[]string{"method", "endpoint", "status_class"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "In-flight HTTP requests",
			},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		SubscriptionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscriptions_created_total",
				Help:      "Total new subscriptions",
			},
		),
		SubscriptionsReactivated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscriptions_reactivated_total",
				Help:      "Total subscriptions reactivated after unsubscribe",
			},
		),
		SubscriptionTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscription_transitions_total",
				Help:      "Status transitions by target status",
			},
			[]string{"status"},
		),
		SubscribersByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "subscribers",
				Help:      "Subscribers per status, refreshed by the stats job",
			},
			[]string{"status"},
		),
		PostsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posts_created_total",
				Help:      "Total posts created",
			},
			[]string{"category"},
		),
		PostsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posts_deleted_total",
				Help:      "Total posts deleted",
			},
		),

		CacheOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Cache operation counts",
			},
			[]string{"operation", "result"},
		),
		PublishTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rabbitmq_publish_total",
				Help:      "RabbitMQ messages published",
			},
			[]string{"routing_key", "result"},
		),
		EmailsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_total",
				Help:      "E-mails handed to the SMTP server",
			},
			[]string{"result"},
		),

		CronRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cron_runs_total",
				Help:      "Cron job executions",
			},
			[]string{"job"},
		),
		CronRunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cron_run_duration_seconds",
				Help:      "Duration of cron jobs",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),

		ServiceUptime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "service_start_time_seconds",
				Help:      "Unix time the service started",
			},
		),

		BusinessErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "business_errors_total",
				Help:      "Total business errors",
			},
			errorLabels,
		),
		TechnicalErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "technical_errors_total",
				Help:      "Total technical errors",
			},
			errorLabels,
		),
	}

	m.Registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestsInFlight,
		m.HTTPRequestDuration,
		m.SubscriptionsCreated,
		m.SubscriptionsReactivated,
		m.SubscriptionTransitions,
		m.SubscribersByStatus,
		m.PostsCreated,
		m.PostsDeleted,
		m.CacheOperations,
		m.PublishTotal,
		m.EmailsTotal,
		m.CronRuns,
		m.CronRunDuration,
		m.ServiceUptime,
		m.BusinessErrors,
		m.TechnicalErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.ServiceUptime.SetToCurrentTime()

	return m
}

// RegisterDB exposes connection pool stats of db.
func (m *Metrics) RegisterDB(db *sql.DB, dbName string) {
	m.Registry.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// HTTPMiddleware instruments Gin HTTP handlers for RED metrics.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		c.Next()
		m.HTTPRequestsInFlight.Dec()

		dur := time.Since(start).Seconds()
		status := c.Writer.Status()
		statusClass := fmt.Sprintf("%dxx", status/divisor)

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, c.FullPath(), statusClass).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, c.FullPath()).Observe(dur)
	}
}

// CronJob wraps a function with cron metrics (runs + duration).
func (m *Metrics) CronJob(job string, fn func()) {
	start := time.Now()
	m.CronRuns.WithLabelValues(job).Inc()
	fn()
	m.CronRunDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

// RecordPublish counts a publish attempt as "ok" or "error".
func (m *Metrics) RecordPublish(routingKey string, err error) {
	m.PublishTotal.WithLabelValues(routingKey, result(err)).Inc()
}

func (m *Metrics) RecordEmail(err error) {
	m.EmailsTotal.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) RecordCache(operation string, err error) {
	m.CacheOperations.WithLabelValues(operation, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
