package cache

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
)

// Start launches the background refresh if it is not running. The refresh
// only runs while the cache is populated; Get starts it on populate.
func (c *Cache[T]) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated {
		return
	}
	c.startLocked()
}

// Stop halts the background refresh and waits for an in-flight refresh to finish.
// Stopping a stopped cache is a no-op.
func (c *Cache[T]) Stop() {
	c.mu.Lock()
	cancel, done := c.detachLocked()
	c.mu.Unlock()
	wait(cancel, done)
}

// Running reports whether the background refresh is active.
func (c *Cache[T]) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// startLocked is idempotent. Must be called with c.mu held.
func (c *Cache[T]) startLocked() {
	if c.cancel != nil || c.closed || c.cfg.interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	go c.loop(ctx, done)
}

// detachLocked clears the timer handle. Must be called with c.mu held;
// the returned pair is handed to wait after unlocking.
func (c *Cache[T]) detachLocked() (context.CancelFunc, chan struct{}) {
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	return cancel, done
}

func wait(cancel context.CancelFunc, done chan struct{}) {
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Cache[T]) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.cfg.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

// refresh performs one background fetch. A failure leaves the cache and its
// timestamp untouched. An unchanged fingerprint leaves everything untouched.
func (c *Cache[T]) refresh(ctx context.Context) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	ctx, span := c.cfg.tracer.Start(ctx, "cache.refresh")
	defer span.End()
	span.SetAttribute("cache.resource", c.name)

	data, err := c.fetch(ctx)
	if err == nil {
		var fp string
		if fp, err = c.fingerprint(data); err == nil {
			c.apply(gen, data, fp)
			return
		}
	}
	if ctx.Err() != nil {
		return
	}
	span.RecordError(err)
	c.cfg.metrics.RefreshError(c.name)
	c.cfg.logger.Warn(fmt.Sprintf("%s: %v", c.name,
		zerr.Wrap(err, domain.ErrRefreshFailed.Error())))
}

func (c *Cache[T]) apply(gen uint64, data []T, fp string) {
	c.mu.Lock()
	if c.generation != gen || !c.populated || c.closed {
		c.mu.Unlock()
		return
	}
	if fp == c.lastPrint {
		c.mu.Unlock()
		c.cfg.metrics.Refresh(c.name, false)
		return
	}
	c.data = data
	c.fetchedAt = time.Now()
	c.lastPrint = fp
	c.version++
	ev := domain.ChangeEvent[T]{
		Resource: c.name,
		Data:     slices.Clone(data),
		Version:  c.version,
		At:       c.fetchedAt,
	}
	c.mu.Unlock()

	c.cfg.metrics.Refresh(c.name, true)
	c.cfg.metrics.Version(c.name, ev.Version)
	c.broadcast(ev)
}

// Subscribe registers for change events. An event is sent whenever a populated
// collection is replaced by one with a different fingerprint, whether by the
// background refresh or by a read after the TTL. Events are delivered without
// blocking: a full channel drops the event. The returned func unsubscribes
// and closes the channel.
func (c *Cache[T]) Subscribe() (<-chan domain.ChangeEvent[T], func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	ch := make(chan domain.ChangeEvent[T], c.cfg.eventBuffer)
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

func (c *Cache[T]) broadcast(ev domain.ChangeEvent[T]) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			c.cfg.logger.Warn(fmt.Sprintf("%s: subscriber is behind, dropped change event for version %d", c.name, ev.Version))
		}
	}
}
