// Package metrics exposes application-level Prometheus instruments.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the vending-core instruments.
type Metrics struct {
	purchasesTotal   *prometheus.CounterVec
	kwhCreditedTotal prometheus.Counter
	httpDuration     *prometheus.HistogramVec
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		purchasesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voltara",
			Name:      "purchases_total",
			Help:      "Purchase attempts by outcome and failure reason.",
		}, []string{"outcome", "reason"}),
		kwhCreditedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "voltara",
			Name:      "kwh_credited_total",
			Help:      "Total energy credited to meters, in kWh.",
		}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voltara",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObservePurchase records one purchase attempt.
func (m *Metrics) ObservePurchase(outcome, reason string, kwh float64) {
	if m == nil {
		return
	}
	m.purchasesTotal.WithLabelValues(outcome, reason).Inc()
	if kwh > 0 {
		m.kwhCreditedTotal.Add(kwh)
	}
}

// GinMiddleware records request latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
