// Package metricscache wraps any cache.Handle with Prometheus counters and
// a latency histogram, so a deployment can see hit/miss/error rates and
// call latency per backend without either cache.Handle implementation
// knowing about metrics at all.
package metricscache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/orishu/turbocache/cache"
)

var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "turbocache_cache_ops_total",
		Help: "Total cache handle operations, by backend, operation, and outcome.",
	}, []string{"backend", "op", "outcome"})

	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "turbocache_cache_op_duration_seconds",
		Help:    "Cache handle operation latency, by backend and operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
)

// Handle wraps an inner cache.Handle, recording metrics for every call.
// Backend is a free-form label ("memory", "redis") used to distinguish
// instances in the exported series.
type Handle struct {
	inner   cache.Handle
	backend string
}

// Wrap returns a metrics-instrumented cache.Handle backed by inner.
func Wrap(inner cache.Handle, backend string) cache.Handle {
	return &Handle{inner: inner, backend: backend}
}

// observe records latency unconditionally and the op/outcome counter for
// every op except get, whose outcome is finer-grained (hit/miss/error) and
// recorded by the caller instead.
func (h *Handle) observe(op string, start time.Time, err error) {
	opDuration.WithLabelValues(h.backend, op).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	opsTotal.WithLabelValues(h.backend, op, outcome).Inc()
}

func (h *Handle) GetBytes(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	val, err := h.inner.GetBytes(ctx, key)
	opDuration.WithLabelValues(h.backend, "get").Observe(time.Since(start).Seconds())

	outcome := "error"
	if err == nil {
		outcome = "hit"
		if val == nil {
			outcome = "miss"
		}
	}
	opsTotal.WithLabelValues(h.backend, "get", outcome).Inc()
	return val, err
}

func (h *Handle) PutBytes(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := h.inner.PutBytes(ctx, key, value)
	h.observe("put", start, err)
	return err
}

func (h *Handle) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := h.inner.Delete(ctx, key)
	h.observe("delete", start, err)
	return err
}

func (h *Handle) ScanKeys(ctx context.Context, pattern string) (map[string]string, error) {
	start := time.Now()
	res, err := h.inner.ScanKeys(ctx, pattern)
	h.observe("scan", start, err)
	return res, err
}

func (h *Handle) Clone() cache.Handle {
	return &Handle{inner: h.inner.Clone(), backend: h.backend}
}
