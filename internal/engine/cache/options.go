package cache

import (
	"context"
	"time"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

type config struct {
	ttl         time.Duration
	interval    time.Duration
	mode        domain.FingerprintMode
	logger      ports.Logger
	metrics     ports.CacheMetrics
	tracer      ports.Tracer
	eventBuffer int
}

func defaultConfig() config {
	return config{
		ttl:         domain.DefaultCacheTTL,
		interval:    domain.DefaultRefreshInterval,
		mode:        domain.FingerprintLength,
		logger:      nopLogger{},
		metrics:     nopMetrics{},
		tracer:      nopTracer{},
		eventBuffer: 16,
	}
}

// Option configures a Cache.
type Option func(*config)

// WithTTL sets how long a populated collection is served without a network call.
func WithTTL(d time.Duration) Option {
	return func(c *config) { c.ttl = d }
}

// WithRefreshInterval sets the background refresh period. A zero or negative
// interval disables the background refresh.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

// WithFingerprint selects how refreshed collections are compared.
func WithFingerprint(mode domain.FingerprintMode) Option {
	return func(c *config) { c.mode = mode }
}

// WithLogger sets the logger for fallback and refresh warnings.
func WithLogger(l ports.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m ports.CacheMetrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracer sets the tracer used around fetches.
func WithTracer(t ports.Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithEventBuffer sets the channel capacity of each subscription.
func WithEventBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.eventBuffer = n
		}
	}
}

// FromConfig applies the cache settings of a resolved configuration.
func FromConfig(cfg domain.Config) Option {
	return func(c *config) {
		if cfg.CacheTTL > 0 {
			c.ttl = cfg.CacheTTL
		}
		c.interval = cfg.RefreshInterval
		if cfg.Fingerprint != "" {
			c.mode = cfg.Fingerprint
		}
	}
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type nopMetrics struct{}

func (nopMetrics) Hit(string)             {}
func (nopMetrics) Miss(string)            {}
func (nopMetrics) Stale(string)           {}
func (nopMetrics) Refresh(string, bool)   {}
func (nopMetrics) RefreshError(string)    {}
func (nopMetrics) Version(string, uint64) {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}
