package ports

import "context"

// Span is a unit of traced work.
type Span interface {
	// End completes the span.
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Tracer starts spans.
//
//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// CacheMetrics records cache behaviour per resource.
type CacheMetrics interface {
	// Hit counts a read served from a fresh cache.
	Hit(resource string)
	// Miss counts a read that went to the network.
	Miss(resource string)
	// Stale counts a read served from cache after a failed fetch.
	Stale(resource string)
	// Refresh counts a background refresh and whether it observed a change.
	Refresh(resource string, changed bool)
	// RefreshError counts a failed background refresh.
	RefreshError(resource string)
	// Version reports the current version of a resource.
	Version(resource string, version uint64)
}
