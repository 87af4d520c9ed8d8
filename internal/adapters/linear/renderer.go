// Package linear provides a synchronous, line-buffered renderer for CI environments.
package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It writes one chronological line per event, prefixed with the resource name.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu       sync.Mutex
	versions map[string]uint64

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewRenderer creates a new LinearRenderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:   stdout,
		stderr:   stderr,
		output:   termenv.NewOutput(stderr, termenv.WithProfile(colorProfile())),
		versions: make(map[string]uint64),
		stopped:  make(chan struct{}),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	// Use ANSI for basic color support in CI
	return termenv.ANSI
}

// Start is a no-op for linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop prints a summary of the watched collections and releases Wait.
func (r *Renderer) Stop() error {
	r.stopOnce.Do(func() {
		defer close(r.stopped)

		r.mu.Lock()
		defer r.mu.Unlock()
		if len(r.versions) == 0 {
			return
		}
		_, _ = fmt.Fprintf(r.stderr, "Stopped watching %d collection(s)\n", len(r.versions))
	})
	return nil
}

// Wait blocks until Stop is called.
func (r *Renderer) Wait() error {
	<-r.stopped
	return nil
}

// OnSnapshot prints the initial state of a collection.
func (r *Renderer) OnSnapshot(resource string, count int, version uint64, fromCache bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.versions[resource] = version
	source := "network"
	if fromCache {
		source = "cache"
	}
	_, _ = fmt.Fprintf(r.stdout, "%s %d record(s), version %d (%s)\n",
		r.prefix(resource), count, version, source)
}

// OnChange prints a refreshed collection.
func (r *Renderer) OnChange(resource string, count int, version uint64, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.versions[resource] = version
	symbol := r.output.String("~").Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(r.stdout, "%s %s changed at %s: %d record(s), version %d\n",
		r.prefix(resource), symbol, at.Format(time.TimeOnly), count, version)
}

// OnLiveUpdate prints a live feed message.
func (r *Renderer) OnLiveUpdate(update domain.LiveUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resource := update.Resource
	if resource == "" {
		resource = "live"
	}
	line := fmt.Sprintf("%s live %s", r.prefix(resource), update.Kind)
	if id := recordID(update.Data); id != "" {
		line += " " + id
	}
	_, _ = fmt.Fprintln(r.stdout, line)
}

// OnRequest prints a completed backend request.
func (r *Renderer) OnRequest(name string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.prefix(name)
	duration = duration.Round(time.Millisecond)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}
	symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
}

// recordID extracts the record identifier from a live payload, if any.
func recordID(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var rec struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return ""
	}
	return rec.ID
}
