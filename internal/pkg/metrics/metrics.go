package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "straatradar",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "straatradar",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	// Lookup pipeline metrics
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "straatradar",
		Subsystem: "lookup",
		Name:      "queries_total",
		Help:      "Total street lookups, by outcome",
	}, []string{"outcome"})

	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "straatradar",
		Subsystem: "lookup",
		Name:      "duration_seconds",
		Help:      "End-to-end street lookup duration",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	StreetsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "straatradar",
		Subsystem: "lookup",
		Name:      "streets_returned",
		Help:      "Distinct streets returned per lookup",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	})

	// Upstream WFS metrics
	WFSPagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "straatradar",
		Subsystem: "wfs",
		Name:      "pages_fetched_total",
		Help:      "Total feature pages fetched from the WFS",
	})

	WFSPageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "straatradar",
		Subsystem: "wfs",
		Name:      "page_fetch_duration_seconds",
		Help:      "Duration of a single WFS page fetch",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	WFSFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "straatradar",
		Subsystem: "wfs",
		Name:      "fetch_errors_total",
		Help:      "Total failed WFS requests, by kind",
	}, []string{"kind"})

	FragmentsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "straatradar",
		Subsystem: "wfs",
		Name:      "fragments_parsed_total",
		Help:      "Total road fragments parsed from WFS features",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
