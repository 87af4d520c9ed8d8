package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/courseware/internal/ui/style"
)

// View renders the UI.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.resourceList(),
		m.eventPane(),
	)
}

//nolint:gocritic // hugeParam ignored
func (m *Model) resourceList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("COLLECTIONS") + "\n\n")

	start := m.ListOffset
	end := min(m.ListOffset+m.ListHeight, len(m.Resources))
	start = min(start, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderResourceRow(i, m.Resources[i]) + "\n")
	}

	if m.ListWidth > 0 {
		return listStyle.Width(m.ListWidth).Render(s.String())
	}
	return listStyle.Render(s.String())
}

func (m *Model) renderResourceRow(index int, node *ResourceNode) string {
	icon := resourceIcon(node)
	rowStyle := resourceStyle(node)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if node.Status == StatusLoading {
			rowStyle = selectedStyle
		}
	}

	content := fmt.Sprintf("%s %s %d v%d", icon, node.Name, node.Count, node.Version)
	row := cursor + rowStyle.Render(content)
	if age := m.age(node.UpdatedAt); age != "" {
		row += " " + mutedStyle.Render(age)
	}
	return row
}

func (m *Model) age(at time.Time) string {
	if m.Now.IsZero() || at.IsZero() || m.Now.Before(at) {
		return ""
	}
	return m.Now.Sub(at).Truncate(time.Second).String()
}

func resourceIcon(node *ResourceNode) string {
	switch node.Status {
	case StatusFresh:
		return style.Check
	case StatusCached:
		return style.Tilde
	case StatusChanged:
		return style.Dot
	default:
		return style.Circle
	}
}

func resourceStyle(node *ResourceNode) lipgloss.Style {
	switch node.Status {
	case StatusFresh:
		return freshStyle
	case StatusCached:
		return cachedStyle
	case StatusChanged:
		return changedStyle
	default:
		return loadingStyle
	}
}

//nolint:gocritic // hugeParam ignored
func (m *Model) eventPane() string {
	scope := "all"
	if !m.FollowMode {
		if sel := m.selected(); sel != nil {
			scope = sel.Name
		}
	}

	header := titleStyle.Render("EVENTS: " + scope)
	requests := fmt.Sprintf("%d request(s)", m.Requests)
	if m.FailedRequests > 0 {
		header += " " + failureTitleStyle.Render(fmt.Sprintf("%s, %d failed", requests, m.FailedRequests))
	} else {
		header += " " + mutedStyle.Render(requests)
	}

	lines := make([]string, 0, len(m.Events)+1)
	lines = append(lines, header, "")
	for _, ev := range m.VisibleEvents() {
		lines = append(lines, renderEvent(ev))
	}

	pane := eventPaneStyle
	if m.EventWidth > 0 {
		pane = pane.Width(m.EventWidth)
	}
	return pane.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderEvent(ev Event) string {
	line := fmt.Sprintf("%s [%s] %s", ev.At.Format(time.TimeOnly), ev.Resource, ev.Text)
	if ev.Failed {
		return errorStyle.Render(line)
	}
	return line
}
