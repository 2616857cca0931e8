package prometheus

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/aescanero/metricsvc/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

// DefaultNamespace prefixes every metric name when Config.Namespace is empty
const DefaultNamespace = "metricsvc"

// Config holds collector configuration
type Config struct {
	Namespace string
	// Buckets are the latency histogram upper bounds in seconds. Defaults to prometheus.DefBuckets.
	Buckets []float64
	// RuntimeMetrics also registers the Go runtime and process collectors.
	RuntimeMetrics bool
}

// Collector implements metrics.Recorder using Prometheus
type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pending  *prometheus.GaugeVec
}

var _ metrics.Recorder = (*Collector)(nil)

// NewCollector creates a new Prometheus request collector backed by its own registry
func NewCollector(cfg Config) (*Collector, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if !model.IsValidMetricName(model.LabelValue(cfg.Namespace)) {
		return nil, fmt.Errorf("invalid metrics namespace: %q", cfg.Namespace)
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	for i := 1; i < len(cfg.Buckets); i++ {
		if cfg.Buckets[i] <= cfg.Buckets[i-1] {
			return nil, fmt.Errorf("histogram buckets must be strictly increasing: %v", cfg.Buckets)
		}
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "endpoint", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   cfg.Buckets,
			},
			[]string{"method", "endpoint", "status"},
		),
		pending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_pending",
				Help:      "Number of HTTP requests currently being handled",
			},
			[]string{"method", "endpoint"},
		),
	}

	toRegister := []prometheus.Collector{c.requests, c.duration, c.pending}
	if cfg.RuntimeMetrics {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	for _, col := range toRegister {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return c, nil
}

// Record counts the request and observes its latency
func (c *Collector) Record(s metrics.Sample) {
	route := s.RouteLabel()
	status := s.StatusLabel()
	c.requests.WithLabelValues(s.Method, route, status).Inc()
	c.duration.WithLabelValues(s.Method, route, status).Observe(s.Duration.Seconds())
}

// StartRequest marks a request as in flight. The returned func ends it; extra calls are no-ops.
func (c *Collector) StartRequest(method, route string) func() {
	g := c.pending.WithLabelValues(method, metrics.RouteLabel(route))
	g.Inc()

	var once sync.Once
	return func() {
		once.Do(g.Dec)
	}
}

// Render encodes every registered metric family in the Prometheus text format
func (c *Collector) Render() ([]byte, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}

	return buf.Bytes(), nil
}

// Registry returns the registry backing the collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
