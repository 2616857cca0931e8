package prometheus

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aescanero/metricsvc/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	c, err := NewCollector(Config{})
	require.NoError(t, err)
	return c
}

func TestCollectorRecord(t *testing.T) {
	c := newTestCollector(t)

	c.Record(metrics.Sample{Method: "GET", Route: "/health", Status: 200, Duration: 20 * time.Millisecond})
	c.Record(metrics.Sample{Method: "GET", Route: "/health", Status: 200, Duration: 30 * time.Millisecond})
	c.Record(metrics.Sample{Method: "GET", Route: "", Status: 404, Duration: time.Millisecond})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", metrics.UnmatchedRoute, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.requests))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestCollectorRecordConcurrent(t *testing.T) {
	c := newTestCollector(t)

	const workers = 50
	const perWorker = 40

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			route := "/health"
			if i%2 == 1 {
				route = "/home"
			}
			for j := 0; j < perWorker; j++ {
				done := c.StartRequest("GET", route)
				c.Record(metrics.Sample{Method: "GET", Route: route, Status: 200, Duration: time.Microsecond})
				done()
			}
		}(i)
	}
	wg.Wait()

	health := testutil.ToFloat64(c.requests.WithLabelValues("GET", "/health", "200"))
	home := testutil.ToFloat64(c.requests.WithLabelValues("GET", "/home", "200"))
	assert.Equal(t, float64(workers*perWorker), health+home)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pending.WithLabelValues("GET", "/health")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pending.WithLabelValues("GET", "/home")))
}

func TestCollectorStartRequest(t *testing.T) {
	c := newTestCollector(t)

	done := c.StartRequest("GET", "/home")
	other := c.StartRequest("GET", "/home")
	assert.Equal(t, 2.0, testutil.ToFloat64(c.pending.WithLabelValues("GET", "/home")))

	done()
	done()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.pending.WithLabelValues("GET", "/home")))

	other()
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pending.WithLabelValues("GET", "/home")))
}

func TestCollectorRender(t *testing.T) {
	c := newTestCollector(t)
	c.Record(metrics.Sample{Method: "GET", Route: "/home", Status: 200, Duration: 10 * time.Millisecond})
	c.Record(metrics.Sample{Method: "GET", Route: "/health", Status: 200, Duration: 10 * time.Millisecond})

	first, err := c.Render()
	require.NoError(t, err)
	text := string(first)

	assert.Contains(t, text, "# TYPE metricsvc_http_requests_total counter")
	assert.Contains(t, text, `metricsvc_http_requests_total{endpoint="/health",method="GET",status="200"} 1`)
	assert.Contains(t, text, `metricsvc_http_requests_duration_seconds_count{endpoint="/home",method="GET",status="200"} 1`)
	assert.Less(t, strings.Index(text, `endpoint="/health"`), strings.Index(text, `endpoint="/home"`))

	second, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, text, string(second))
}

func TestCollectorNamespaceAndBuckets(t *testing.T) {
	c, err := NewCollector(Config{Namespace: "demo", Buckets: []float64{0.1, 1}})
	require.NoError(t, err)
	c.Record(metrics.Sample{Method: "GET", Route: "/home", Status: 200, Duration: 500 * time.Millisecond})

	out, err := c.Render()
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, `demo_http_requests_duration_seconds_bucket{endpoint="/home",method="GET",status="200",le="0.1"} 0`)
	assert.Contains(t, text, `demo_http_requests_duration_seconds_bucket{endpoint="/home",method="GET",status="200",le="1"} 1`)
	assert.NotContains(t, text, "metricsvc_")
}

func TestCollectorRuntimeMetrics(t *testing.T) {
	c, err := NewCollector(Config{RuntimeMetrics: true})
	require.NoError(t, err)

	out, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), "go_goroutines")
}

func TestCollectorInvalidBuckets(t *testing.T) {
	_, err := NewCollector(Config{Buckets: []float64{1, 0.5}})
	assert.Error(t, err)
}

func TestCollectorInvalidNamespace(t *testing.T) {
	_, err := NewCollector(Config{Namespace: "metric-svc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid metrics namespace")
}
