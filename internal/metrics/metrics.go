// Package metrics exposes render and reload counters in the Prometheus
// format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "fbcharts"

// Recorder collects the metrics of one process. A nil Recorder records
// nothing.
type Recorder struct {
	registry *prometheus.Registry

	renders       *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	reloads       *prometheus.CounterVec
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Charts rendered, by chart and output format.",
		}, []string{"chart", "format"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one chart.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"format"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_lookups_total",
			Help:      "Render cache lookups, by format and result.",
		}, []string{"format", "result"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payload_reloads_total",
			Help:      "Payload reloads, by result.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(r.renders, r.renderSeconds, r.cacheLookups, r.reloads)
	return r
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRender records one rendered chart.
func (r *Recorder) ObserveRender(chart, format string, d time.Duration) {
	if r == nil {
		return
	}
	r.renders.WithLabelValues(chart, format).Inc()
	r.renderSeconds.WithLabelValues(format).Observe(d.Seconds())
}

// CacheHit records a render served from the cache.
func (r *Recorder) CacheHit(format string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(format, "hit").Inc()
}

// CacheMiss records a render that missed the cache.
func (r *Recorder) CacheMiss(format string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(format, "miss").Inc()
}

// Reload records a payload reload attempt.
func (r *Recorder) Reload(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.reloads.WithLabelValues(result).Inc()
}

// WriteText writes every metric in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Handler serves the metrics over HTTP.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics on addr under /metrics until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: serve: %w", err)
	}
	return nil
}
