package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/courseware/internal/ui/style"
)

var (
	loadingStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	changedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	freshStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	cachedStyle = lipgloss.NewStyle().
			Foreground(style.Yellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)

	listStyle = lipgloss.NewStyle().
			PaddingRight(1)

	eventPaneStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(style.Slate)
)
