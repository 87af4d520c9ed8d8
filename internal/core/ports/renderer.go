package ports

import (
	"context"
	"time"

	"go.trai.ch/courseware/internal/core/domain"
)

// Renderer is the abstraction for the watch dashboard.
// It decouples cache and feed events from presentation,
// allowing the same event stream to drive either a rich TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	// For asynchronous renderers (like TUI), this may launch background goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and prepare for shutdown.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers, this may return immediately.
	Wait() error

	// OnSnapshot is called once per resource after the initial read.
	OnSnapshot(resource string, count int, version uint64, fromCache bool)

	// OnChange is called when a background refresh observed new data.
	OnChange(resource string, count int, version uint64, at time.Time)

	// OnLiveUpdate is called for every dispatched live feed message.
	OnLiveUpdate(update domain.LiveUpdate)

	// OnRequest is called when a backend request completes.
	// err: nil if successful, error otherwise
	OnRequest(name string, duration time.Duration, err error)
}
