package ports

import (
	"context"

	"go.trai.ch/courseware/internal/core/domain"
)

// LiveHandlers receive dispatched live feed messages. Nil handlers are skipped.
type LiveHandlers struct {
	OnCreated func(domain.LiveUpdate)
	OnUpdated func(domain.LiveUpdate)
	OnDeleted func(domain.LiveUpdate)
}

// LiveFeed is a push channel from the backend announcing record changes.
//
//go:generate mockgen -source=live.go -destination=mocks/mock_live.go -package=mocks
type LiveFeed interface {
	// Connect opens the feed. Messages are dispatched in the background until
	// the connection ends. Calling Connect while connected is a no-op.
	// There is no reconnection.
	Connect(ctx context.Context, handlers LiveHandlers) error

	// Done is closed when the current connection ends.
	Done() <-chan struct{}

	// Close closes the connection and clears the handle.
	Close() error
}
