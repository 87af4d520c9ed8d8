package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/zerr"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "courseware"

var _ ports.CacheMetrics = (*Metrics)(nil)

// Metrics implements ports.CacheMetrics with Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	stale         *prometheus.CounterVec
	refreshes     *prometheus.CounterVec
	refreshErrors *prometheus.CounterVec
	version       *prometheus.GaugeVec
}

// NewMetrics creates the cache collectors and registers them.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		}, labels)
	}

	m := &Metrics{
		registry:      registry,
		hits:          counter("hits_total", "Reads served from a fresh cache.", "resource"),
		misses:        counter("misses_total", "Reads that went to the network.", "resource"),
		stale:         counter("stale_total", "Failed fetches answered with the cached copy.", "resource"),
		refreshes:     counter("refreshes_total", "Completed background refreshes.", "resource", "changed"),
		refreshErrors: counter("refresh_errors_total", "Failed background refreshes.", "resource"),
		version: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Subsystem: "cache",
			Name:      "version",
			Help:      "Current collection version.",
		}, []string{"resource"}),
	}

	registry.MustRegister(m.hits, m.misses, m.stale, m.refreshes, m.refreshErrors, m.version)
	return m
}

// Registry returns the registry holding the cache collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hit counts a fresh read.
func (m *Metrics) Hit(resource string) { m.hits.WithLabelValues(resource).Inc() }

// Miss counts a network read.
func (m *Metrics) Miss(resource string) { m.misses.WithLabelValues(resource).Inc() }

// Stale counts a failed read answered from cache.
func (m *Metrics) Stale(resource string) { m.stale.WithLabelValues(resource).Inc() }

// Refresh counts a completed background refresh.
func (m *Metrics) Refresh(resource string, changed bool) {
	m.refreshes.WithLabelValues(resource, strconv.FormatBool(changed)).Inc()
}

// RefreshError counts a failed background refresh.
func (m *Metrics) RefreshError(resource string) { m.refreshErrors.WithLabelValues(resource).Inc() }

// Version records the current version of a collection.
func (m *Metrics) Version(resource string, version uint64) {
	m.version.WithLabelValues(resource).Set(float64(version))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsServerFailed.Error()), "addr", addr)
	}
	return m.ServeListener(ctx, lis)
}

// ServeListener exposes /metrics on lis until ctx is done.
func (m *Metrics) ServeListener(ctx context.Context, lis net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrMetricsServerFailed.Error())
	}
}
