package app

import (
	"context"
	"fmt"

	"go.trai.ch/courseware/internal/ui/output"
	"go.trai.ch/zerr"
)

// ListOptions configuration for the List method.
type ListOptions struct {
	// Refresh bypasses the cache.
	Refresh bool
	// JSON prints the records as a JSON array instead of a table.
	JSON bool
}

// List prints a collection. The source and version go to stderr so stdout stays
// parseable.
func (a *App) List(ctx context.Context, name string, opts ListOptions) error {
	col, err := a.catalog.Lookup(name)
	if err != nil {
		return err
	}
	recs, err := col.Records(ctx, opts.Refresh)
	if err != nil {
		return err
	}

	if opts.JSON {
		if recs.Count == 0 {
			_, err = fmt.Fprintln(a.stdout, "[]")
			return err
		}
		return a.printJSON(recs.Data)
	}

	if recs.Count == 0 {
		_, _ = fmt.Fprintf(a.stdout, "No %s found.\n", recs.Resource)
	} else {
		_, _ = fmt.Fprintln(a.stdout, output.Table(recs.Columns, recs.Rows))
	}

	source := "network"
	if recs.FromCache {
		source = "cache"
	}
	_, _ = fmt.Fprintf(a.stderr, "%d %s, version %d (%s)\n", recs.Count, recs.Resource, recs.Version, source)
	return nil
}

// Get prints one record as JSON.
func (a *App) Get(ctx context.Context, name, id string) error {
	col, err := a.catalog.Lookup(name)
	if err != nil {
		return err
	}
	rec, err := col.Fetch(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

// Create creates a record from a JSON body and prints the result.
func (a *App) Create(ctx context.Context, name string, body []byte) error {
	col, err := a.catalog.Lookup(name)
	if err != nil {
		return err
	}
	rec, err := col.CreateJSON(ctx, body)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("created %s", col.Descriptor().Singular))
	return a.printJSON(rec)
}

// Update replaces the fields of record id with a JSON body and prints the result.
func (a *App) Update(ctx context.Context, name, id string, body []byte) error {
	col, err := a.catalog.Lookup(name)
	if err != nil {
		return err
	}
	rec, err := col.UpdateJSON(ctx, id, body)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("updated %s %s", col.Descriptor().Singular, id))
	return a.printJSON(rec)
}

// Delete removes record id.
func (a *App) Delete(ctx context.Context, name, id string) error {
	col, err := a.catalog.Lookup(name)
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, id); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("deleted %s %s", col.Descriptor().Singular, id))
	return nil
}

func (a *App) printJSON(v any) error {
	if err := output.JSON(a.stdout, v); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
