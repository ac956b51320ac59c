package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbonduro/prettyteeth/internal/store"
)

const namespace = "prettyteeth"

// Collector owns a private registry so several servers (tests) can coexist in
// one process.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	MutationsTotal    *prometheus.CounterVec
	UploadedBytes     prometheus.Counter
	RateLimitedTotal  prometheus.Counter
	PlaceholderWrites *prometheus.CounterVec
}

// NewCollector registers the HTTP and domain collectors. When counts is non-nil
// the size of each collection is exported as a gauge.
func NewCollector(counts func() store.Counts) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"method", "route"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "mutations_total",
			Help:      "Successful repository writes by entity kind and action.",
		}, []string{"kind", "action"}),

		UploadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "uploaded_bytes_total",
			Help:      "Total bytes of accepted image uploads.",
		}),

		RateLimitedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),

		PlaceholderWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reference",
			Name:      "unpersisted_writes_total",
			Help:      "Writes to reference endpoints that were echoed but not stored.",
		}, []string{"kind"}),
	}

	if counts != nil {
		entities := func(pick func(store.Counts) int) func() float64 {
			return func() float64 { return float64(pick(counts())) }
		}
		for kind, pick := range map[string]func(store.Counts) int{
			"schedule": func(n store.Counts) int { return n.Schedules },
			"image":    func(n store.Counts) int { return n.Images },
			"reminder": func(n store.Counts) int { return n.Reminders },
		} {
			factory.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "repository",
				Name:        "entities",
				Help:        "Entities currently held per collection.",
				ConstLabels: prometheus.Labels{"kind": kind},
			}, entities(pick))
		}
	}

	return c
}

func (c *Collector) RecordMutation(kind, action string) {
	c.MutationsTotal.WithLabelValues(kind, action).Inc()
}

// ObserveRequest records one finished request. route is the matched mux
// pattern so label cardinality stays bounded.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
