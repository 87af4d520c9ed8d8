// Package tui provides the interactive dashboard shown by the watch command.
package tui

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	defaultTickInterval = time.Second
	defaultMaxEvents    = 500
)

// NewModel creates a new dashboard model with default settings.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := NewOutput(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Resources:    make([]*ResourceNode, 0),
		ResourceMap:  make(map[string]*ResourceNode),
		Events:       make([]Event, 0),
		Output:       out,
		FollowMode:   true,
		MaxEvents:    defaultMaxEvents,
		TickInterval: defaultTickInterval,
	}
}

// WithDisableTick stops the clock that refreshes record ages.
func (m Model) WithDisableTick() Model { //nolint:gocritic // builder on value
	m.DisableTick = true
	return m
}

// ColorProfile returns Ascii when NO_COLOR is set and TrueColor otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.TrueColor
}

// NewOutput creates a termenv.Output using ColorProfile.
func NewOutput(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
