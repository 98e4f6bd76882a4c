package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expensesCreatedTotal      prometheus.Counter
	expensesDeletedTotal      prometheus.Counter
	expenseAmount             prometheus.Histogram
	categoriesCreatedTotal    prometheus.Counter
	categoriesDeletedTotal    prometheus.Counter
	budgetExceededTotal       prometheus.Counter
	summaryDuration           prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
	apiErrorsTotal            *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expensesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_created_total",
				Help: "Total number of expenses recorded",
			},
		),
		expensesDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenses_deleted_total",
				Help: "Total number of expenses deleted",
			},
		),
		expenseAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expense_amount",
				Help:    "Recorded expense amounts in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 6),
			},
		),
		categoriesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "categories_created_total",
				Help: "Total number of categories created",
			},
		),
		categoriesDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "categories_deleted_total",
				Help: "Total number of categories deleted",
			},
		),
		budgetExceededTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "budget_exceeded_total",
				Help: "Total number of expense writes that pushed a category over budget",
			},
		),
		summaryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "monthly_summary_duration_seconds",
				Help:    "Monthly summary aggregation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		apiErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API error responses by error code",
			},
			[]string{"code"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "expense_created":
		m.expensesCreatedTotal.Inc()
	case "expense_deleted":
		m.expensesDeletedTotal.Inc()
	case "category_created":
		m.categoriesCreatedTotal.Inc()
	case "category_deleted":
		m.categoriesDeletedTotal.Inc()
	case "budget_exceeded":
		m.budgetExceededTotal.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case "api_error":
		if code := tags["code"]; code != "" {
			m.apiErrorsTotal.WithLabelValues(code).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "monthly_summary":
		m.summaryDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "expense_amount":
		m.expenseAmount.Observe(value)
	}
}
