// Package metrics exposes Prometheus metrics for eco scoring and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecoscore/backend/internal/domain"
)

const namespace = "ecoscore"

// Metrics holds all service metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	ScoresTotal       *prometheus.CounterVec
	GreenwashingTotal prometheus.Counter
	ScoreValue        prometheus.Histogram

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ScoresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_total",
			Help:      "Eco scores returned, by grade and source",
		}, []string{"grade", "source"}),
		GreenwashingTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "greenwashing_flags_total",
			Help:      "Results where the scorer flagged greenwashing",
		}),
		ScoreValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score_value",
			Help:      "Distribution of eco score values",
			Buckets:   []float64{45, 60, 75, 85, 100},
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.ScoresTotal,
		m.GreenwashingTotal,
		m.ScoreValue,
		m.RequestsTotal,
		m.RequestDuration,
	)

	return m
}

// ObserveScore records a result handed out to a client
func (m *Metrics) ObserveScore(source string, result *domain.EcoResult) {
	if result == nil {
		return
	}
	m.ScoresTotal.WithLabelValues(string(result.Grade), source).Inc()
	m.ScoreValue.Observe(float64(result.Score))
	if result.GreenwashingDetected {
		m.GreenwashingTotal.Inc()
	}
}

// Middleware counts requests and their latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
