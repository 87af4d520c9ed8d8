package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the dashboard Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
	now     func() time.Time
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
		now:     time.Now,
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnSnapshot forwards the initial read of a collection to the TUI.
func (r *Renderer) OnSnapshot(resource string, count int, version uint64, fromCache bool) {
	r.program.Send(MsgSnapshot{
		Resource:  resource,
		Count:     count,
		Version:   version,
		FromCache: fromCache,
		At:        r.now(),
	})
}

// OnChange forwards a refreshed collection to the TUI.
func (r *Renderer) OnChange(resource string, count int, version uint64, at time.Time) {
	r.program.Send(MsgChange{
		Resource: resource,
		Count:    count,
		Version:  version,
		At:       at,
	})
}

// OnLiveUpdate forwards a live feed message to the TUI.
func (r *Renderer) OnLiveUpdate(update domain.LiveUpdate) {
	r.program.Send(MsgLiveUpdate{Update: update, At: r.now()})
}

// OnRequest forwards a completed backend request to the TUI.
func (r *Renderer) OnRequest(name string, duration time.Duration, err error) {
	r.program.Send(MsgRequest{
		Name:     name,
		Duration: duration,
		Err:      err,
		At:       r.now(),
	})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
