// Package cache implements a read-through collection cache with a freshness
// window, a periodic background refresh and change notification.
package cache

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the full collection from its source.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Cache holds one collection. A Cache is safe for concurrent use; create one per
// resource and share it.
type Cache[T any] struct {
	name        string
	fetch       Fetcher[T]
	fingerprint Fingerprinter[T]
	cfg         config

	mu        sync.Mutex
	data      []T
	populated bool
	fetchedAt time.Time
	version   uint64
	lastPrint string
	// generation is bumped by Invalidate. Fetches that started under an older
	// generation never write back.
	generation uint64
	closed     bool

	cancel context.CancelFunc
	done   chan struct{}

	group singleflight.Group

	subsMu  sync.Mutex
	subs    map[int]chan domain.ChangeEvent[T]
	nextSub int
}

// New creates an empty cache named name that loads through fetch.
func New[T any](name string, fetch Fetcher[T], opts ...Option) *Cache[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[T]{
		name:        name,
		fetch:       fetch,
		fingerprint: FingerprintFor[T](cfg.mode),
		cfg:         cfg,
		subs:        make(map[int]chan domain.ChangeEvent[T]),
	}
}

// Name returns the resource name the cache was created with.
func (c *Cache[T]) Name() string {
	return c.name
}

// Get returns the collection.
//
// A populated cache younger than the TTL is returned without a network call
// unless force is set. Otherwise the collection is fetched; if that fails and a
// previous copy exists, the copy is returned with FromCache set and no error.
// Without a previous copy the fetch error is returned.
func (c *Cache[T]) Get(ctx context.Context, force bool) (domain.Snapshot[T], error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.Snapshot[T]{}, zerr.With(domain.ErrCacheClosed, "resource", c.name)
	}
	if !force && c.populated && time.Since(c.fetchedAt) < c.cfg.ttl {
		snap := c.snapshotLocked(true)
		c.startLocked()
		c.mu.Unlock()
		c.cfg.metrics.Hit(c.name)
		return snap, nil
	}
	gen := c.generation
	c.mu.Unlock()

	c.cfg.metrics.Miss(c.name)

	// The shared fetch outlives any single waiter; each waiter stops on its own ctx.
	key := strconv.FormatUint(gen, 10) + "/" + strconv.FormatBool(force)
	results := c.group.DoChan(key, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), gen, force)
	})

	var res singleflight.Result
	select {
	case res = <-results:
	case <-ctx.Done():
		return domain.Snapshot[T]{}, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrFetchFailed.Error()), "resource", c.name)
	}
	err := res.Err
	if err == nil {
		snap, _ := res.Val.(domain.Snapshot[T])
		snap.Data = slices.Clone(snap.Data)
		return snap, nil
	}

	c.mu.Lock()
	if c.populated {
		snap := c.snapshotLocked(true)
		c.mu.Unlock()
		c.cfg.metrics.Stale(c.name)
		c.cfg.logger.Warn(fmt.Sprintf("%s: fetch failed, serving cached copy (version %d): %v", c.name, snap.Version, err))
		return snap, nil
	}
	c.mu.Unlock()

	return domain.Snapshot[T]{}, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "resource", c.name)
}

// load fetches and, if no invalidation happened in between, stores the result.
func (c *Cache[T]) load(ctx context.Context, gen uint64, force bool) (domain.Snapshot[T], error) {
	ctx, span := c.cfg.tracer.Start(ctx, "cache.fetch")
	defer span.End()
	span.SetAttribute("cache.resource", c.name)
	span.SetAttribute("cache.force", force)

	data, err := c.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.Snapshot[T]{}, err
	}
	fp, err := c.fingerprint(data)
	if err != nil {
		span.RecordError(err)
		return domain.Snapshot[T]{}, err
	}

	c.mu.Lock()
	now := time.Now()
	if c.generation != gen || c.closed {
		c.mu.Unlock()
		// Invalidated while in flight: the caller gets the data, the cache stays empty.
		return domain.Snapshot[T]{Data: data, FetchedAt: now}, nil
	}

	// A replaced collection is announced like a background refresh; the
	// first populate is not a change.
	changed := c.populated && fp != c.lastPrint
	if !c.populated || force || changed {
		c.version++
	}
	c.data = data
	c.populated = true
	c.fetchedAt = now
	c.lastPrint = fp
	c.startLocked()
	snap := c.snapshotLocked(false)
	c.mu.Unlock()

	span.SetAttribute("cache.version", int64(snap.Version))
	c.cfg.metrics.Version(c.name, snap.Version)
	if changed {
		c.broadcast(domain.ChangeEvent[T]{
			Resource: c.name,
			Data:     slices.Clone(snap.Data),
			Version:  snap.Version,
			At:       now,
		})
	}
	return snap, nil
}

// Peek returns the cached collection without fetching.
func (c *Cache[T]) Peek() (domain.Snapshot[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated {
		return domain.Snapshot[T]{}, false
	}
	return c.snapshotLocked(true), true
}

// Find returns the first cached element matching match. It reports false when
// the cache is empty or older than the TTL, without fetching.
func (c *Cache[T]) Find(match func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if !c.populated || time.Since(c.fetchedAt) >= c.cfg.ttl {
		return zero, false
	}
	for _, v := range c.data {
		if match(v) {
			return v, true
		}
	}
	return zero, false
}

// Version returns the current version. It is 0 while the cache is empty.
func (c *Cache[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Invalidate empties the cache, resets its version to 0 and stops the
// background refresh. The next Get always fetches.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.data = nil
	c.populated = false
	c.fetchedAt = time.Time{}
	c.version = 0
	c.lastPrint = ""
	c.generation++
	cancel, done := c.detachLocked()
	c.mu.Unlock()

	c.cfg.metrics.Version(c.name, 0)
	wait(cancel, done)
}

// Close stops the background refresh and closes all subscriptions. Get fails afterwards.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel, done := c.detachLocked()
	c.mu.Unlock()

	wait(cancel, done)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

func (c *Cache[T]) snapshotLocked(fromCache bool) domain.Snapshot[T] {
	return domain.Snapshot[T]{
		Data:      slices.Clone(c.data),
		Version:   c.version,
		FromCache: fromCache,
		FetchedAt: c.fetchedAt,
	}
}
