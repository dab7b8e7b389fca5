package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

// Metrics holds all Prometheus collectors for the front-end.
var Metrics = struct {
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	StoreReads       *prometheus.CounterVec
	RunsOnDisk       prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(runs *store.RunStore) {
	Metrics.AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cgl_analyses_total",
			Help: "Total channel analyses requested, by outcome.",
		},
		[]string{"outcome"},
	)

	Metrics.AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cgl_analysis_duration_seconds",
			Help:    "End-to-end duration of successful channel analyses.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 60, 120},
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cgl_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cgl_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.StoreReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cgl_run_store_reads_total",
			Help: "Single-run store reads, by result.",
		},
		[]string{"result"},
	)

	if runs != nil {
		Metrics.RunsOnDisk = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "cgl_runs_on_disk",
				Help: "Number of readable run records currently in the store.",
			},
			func() float64 {
				items, err := runs.List(context.Background())
				if err != nil {
					return 0
				}
				return float64(len(items))
			},
		)
		prometheus.MustRegister(Metrics.RunsOnDisk)
	}

	prometheus.MustRegister(
		Metrics.AnalysesTotal,
		Metrics.AnalysisDuration,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.StoreReads,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/runs/"):
		return "/api/runs/:ref"
	case strings.HasPrefix(path, "/runs/") && strings.HasSuffix(path, "/download"):
		return "/runs/:ref/download"
	case strings.HasPrefix(path, "/runs/"):
		return "/runs/:ref"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
