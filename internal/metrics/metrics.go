package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fangji"

type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	searches  *prometheus.CounterVec
	mutations *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Prescription searches by match type.",
		}, []string{"match_type"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Successful prescription writes by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.requests, m.duration, m.searches, m.mutations)
	return m
}

// Middleware records every request under its route pattern so ids do not explode label cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Search and Mutation are no-ops on a nil *Metrics.
func (m *Metrics) Search(matchType string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(searchLabel(matchType)).Inc()
}

// searchLabel returns a constant for every label value: matchType may alias a
// request buffer that fasthttp reuses, and the registry keeps label strings.
func searchLabel(matchType string) string {
	switch matchType {
	case "fuzzy":
		return "fuzzy"
	case "exact":
		return "exact"
	case "and":
		return "and"
	case "or":
		return "or"
	default:
		return "other"
	}
}

func (m *Metrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

// Handler exposes g in the Prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
