package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"time"
)

// TickMsg builds the clock message for tests.
func TickMsg(t time.Time) tea.Msg {
	return msgTick(t)
}
