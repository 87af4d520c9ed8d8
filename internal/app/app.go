// Package app implements the application layer for courseware.
package app

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/courseware/internal/adapters/detector"
	"go.trai.ch/courseware/internal/adapters/telemetry"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/courseware/internal/engine/resource"
)

// App represents the main application logic.
type App struct {
	catalog *resource.Catalog
	tokens  ports.TokenStore
	store   ports.KeyValueStore
	feed    ports.LiveFeed
	metrics *telemetry.Metrics
	logger  ports.Logger

	stdout      io.Writer
	stderr      io.Writer
	detect      func() detector.OutputMode
	now         func() time.Time
	teaOptions  []tea.ProgramOption
	disableTick bool
}

// New creates a new App instance.
func New(
	catalog *resource.Catalog,
	tokens ports.TokenStore,
	store ports.KeyValueStore,
	feed ports.LiveFeed,
	metrics *telemetry.Metrics,
	log ports.Logger,
) *App {
	return &App{
		catalog: catalog,
		tokens:  tokens,
		store:   store,
		feed:    feed,
		metrics: metrics,
		logger:  log,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		detect:  detector.DetectEnvironment,
		now:     time.Now,
	}
}

// WithOutput redirects command output. Nil writers are left unchanged.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	if stdout != nil {
		a.stdout = stdout
	}
	if stderr != nil {
		a.stderr = stderr
	}
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI tick loop.
// This is primarily used for testing with synctest to avoid goroutine deadlocks.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// WithDetector replaces terminal detection for --output auto.
func (a *App) WithDetector(detect func() detector.OutputMode) *App {
	a.detect = detect
	return a
}

// WithClock replaces the clock used for token expiry.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Catalog returns the collection services.
func (a *App) Catalog() *resource.Catalog {
	return a.catalog
}
