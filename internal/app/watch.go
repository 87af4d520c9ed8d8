package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/courseware/internal/adapters/detector"
	"go.trai.ch/courseware/internal/adapters/linear"
	"go.trai.ch/courseware/internal/adapters/telemetry"
	"go.trai.ch/courseware/internal/adapters/tui"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/courseware/internal/engine/resource"
	"golang.org/x/sync/errgroup"
)

// liveBacklog bounds live updates waiting for their collection to be re-read.
const liveBacklog = 64

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// OutputMode is one of "auto", "tui" or "linear".
	OutputMode string
	// MetricsAddr serves Prometheus metrics when set, e.g. ":9090".
	MetricsAddr string
}

// Watch loads every collection and renders changes until ctx is done or the
// dashboard is closed. Background refreshes report through the change
// subscription; live feed messages invalidate and re-read their collection.
//
//nolint:cyclop // orchestration function
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	mode, err := detector.ResolveMode(a.detect(), opts.OutputMode)
	if err != nil {
		return err
	}
	renderer := a.newRenderer(mode)

	shutdown := telemetry.InstallBridge(renderer)
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Closing the dashboard ends the watch.
		defer cancel()
		return renderer.Wait()
	})

	g.Go(func() error {
		<-ctx.Done()
		return renderer.Stop()
	})

	collections := a.catalog.All()
	for _, col := range collections {
		changes, unsubscribe := col.Changes()
		g.Go(func() error {
			defer unsubscribe()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ch, ok := <-changes:
					if !ok {
						return nil
					}
					renderer.OnChange(ch.Resource, ch.Count, ch.Version, ch.At)
				}
			}
		})
	}
	defer func() {
		for _, col := range collections {
			col.Stop()
		}
	}()

	g.Go(func() error {
		for _, col := range collections {
			recs, err := col.Records(ctx, false)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.logger.Warn(fmt.Sprintf("%s: initial load failed: %v", col.Descriptor().Name, err))
				continue
			}
			renderer.OnSnapshot(recs.Resource, recs.Count, recs.Version, recs.FromCache)
		}
		return nil
	})

	updates := make(chan domain.LiveUpdate, liveBacklog)
	enqueue := func(u domain.LiveUpdate) {
		select {
		case updates <- u:
		default:
			a.logger.Warn(fmt.Sprintf("live update backlog full, dropped %s %s", u.Resource, u.Kind))
		}
	}
	if err := a.feed.Connect(ctx, ports.LiveHandlers{
		OnCreated: enqueue,
		OnUpdated: enqueue,
		OnDeleted: enqueue,
	}); err != nil {
		a.logger.Warn(fmt.Sprintf("live updates disabled: %v", err))
	}
	defer func() { _ = a.feed.Close() }()

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case u := <-updates:
				renderer.OnLiveUpdate(u)
				a.reload(ctx, renderer, u)
			}
		}
	})

	if opts.MetricsAddr != "" && a.metrics != nil {
		g.Go(func() error {
			return a.metrics.Serve(ctx, opts.MetricsAddr)
		})
	}

	g.Go(func() error {
		if err := a.store.Watch(ctx); err != nil {
			a.logger.Warn(fmt.Sprintf("token store is not watched: %v", err))
		}
		return nil
	})

	return g.Wait()
}

// reload invalidates the collection a live update names and reads it again.
// Updates for resources outside the catalog are only rendered.
func (a *App) reload(ctx context.Context, renderer ports.Renderer, u domain.LiveUpdate) {
	var targets []resource.Collection
	if u.Resource == "" {
		targets = a.catalog.All()
	} else {
		col, err := a.catalog.Lookup(u.Resource)
		if err != nil {
			return
		}
		targets = []resource.Collection{col}
	}

	for _, col := range targets {
		col.Invalidate()
		recs, err := col.Records(ctx, false)
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Warn(fmt.Sprintf("%s: reload after live update failed: %v", col.Descriptor().Name, err))
			}
			continue
		}
		renderer.OnChange(recs.Resource, recs.Count, recs.Version, recs.FetchedAt)
	}
}

func (a *App) newRenderer(mode detector.OutputMode) ports.Renderer {
	if mode == detector.ModeTUI {
		model := tui.NewModel(os.Stderr)
		if a.disableTick {
			model = model.WithDisableTick()
		}
		return tui.NewRenderer(&model, a.teaOptions...)
	}
	return linear.NewRenderer(a.stdout, a.stderr)
}
