package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	resourceListWidthPercent = 35
	eventPaneBorderWidth     = 3
)

// ResourceStatus represents the freshness of a watched collection.
type ResourceStatus string

const (
	// StatusLoading indicates no snapshot has arrived yet.
	StatusLoading ResourceStatus = "Loading"
	// StatusFresh indicates the snapshot came from the network.
	StatusFresh ResourceStatus = "Fresh"
	// StatusCached indicates the snapshot was served from the cache.
	StatusCached ResourceStatus = "Cached"
	// StatusChanged indicates a refresh observed new data.
	StatusChanged ResourceStatus = "Changed"
)

// ResourceNode represents a single collection in the dashboard list.
type ResourceNode struct {
	Name      string
	Status    ResourceStatus
	Count     int
	Version   uint64
	UpdatedAt time.Time
}

// Event is one line of the activity pane.
type Event struct {
	At       time.Time
	Resource string
	Text     string
	Failed   bool
}

// Model represents the dashboard state.
type Model struct {
	Resources   []*ResourceNode
	ResourceMap map[string]*ResourceNode
	Events      []Event
	MaxEvents   int

	Requests       int
	FailedRequests int

	SelectedIdx int
	ListOffset  int
	ListHeight  int
	ListWidth   int
	EventWidth  int
	EventHeight int

	// FollowMode shows every event; otherwise only the selected collection's.
	FollowMode bool

	Output       *termenv.Output
	Now          time.Time
	TickInterval time.Duration
	DisableTick  bool
}

// Init starts the clock used to render record ages.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.DisableTick || m.TickInterval <= 0 {
		return nil
	}
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg { return msgTick(t) })
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selected() *ResourceNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Resources) {
		return m.Resources[m.SelectedIdx]
	}
	return nil
}

// node returns the entry for name, adding it in arrival order.
func (m *Model) node(name string) *ResourceNode {
	if m.ResourceMap == nil {
		m.ResourceMap = make(map[string]*ResourceNode)
	}
	if n, ok := m.ResourceMap[name]; ok {
		return n
	}
	n := &ResourceNode{Name: name, Status: StatusLoading}
	m.Resources = append(m.Resources, n)
	m.ResourceMap[name] = n
	return n
}

func (m *Model) addEvent(ev Event) {
	m.Events = append(m.Events, ev)
	if m.MaxEvents > 0 && len(m.Events) > m.MaxEvents {
		m.Events = append([]Event(nil), m.Events[len(m.Events)-m.MaxEvents:]...)
	}
}

// VisibleEvents returns the tail of the activity log that fits the pane,
// filtered to the selected collection unless following everything.
func (m *Model) VisibleEvents() []Event {
	events := m.Events
	if !m.FollowMode {
		if sel := m.selected(); sel != nil {
			filtered := make([]Event, 0, len(events))
			for _, ev := range events {
				if sameResource(ev.Resource, sel.Name) {
					filtered = append(filtered, ev)
				}
			}
			events = filtered
		}
	}
	if m.EventHeight > 0 && len(events) > m.EventHeight {
		events = events[len(events)-m.EventHeight:]
	}
	return events
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop,gocritic // hugeParam ignored, cyclop ignored
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.FollowMode = false
				m.ensureVisible()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Resources)-1 {
				m.SelectedIdx++
				m.FollowMode = false
				m.ensureVisible()
			}
		case "enter":
			m.FollowMode = false
		case "esc":
			m.FollowMode = true
		}

	case tea.WindowSizeMsg:
		m.ListWidth = msg.Width * resourceListWidthPercent / 100
		m.EventWidth = msg.Width - m.ListWidth - eventPaneBorderWidth

		headerHeight := lipgloss.Height(titleStyle.Render("COLLECTIONS") + "\n\n")
		m.ListHeight = msg.Height - headerHeight
		m.EventHeight = msg.Height - headerHeight
		m.ensureVisible()

	case MsgSnapshot:
		n := m.node(msg.Resource)
		n.Count = msg.Count
		n.Version = msg.Version
		n.UpdatedAt = msg.At
		source := "network"
		n.Status = StatusFresh
		if msg.FromCache {
			source = "cache"
			n.Status = StatusCached
		}
		m.addEvent(Event{
			At:       msg.At,
			Resource: msg.Resource,
			Text:     fmt.Sprintf("loaded %d record(s) from %s", msg.Count, source),
		})

	case MsgChange:
		n := m.node(msg.Resource)
		n.Count = msg.Count
		n.Version = msg.Version
		n.UpdatedAt = msg.At
		n.Status = StatusChanged
		m.addEvent(Event{
			At:       msg.At,
			Resource: msg.Resource,
			Text:     fmt.Sprintf("changed: %d record(s), version %d", msg.Count, msg.Version),
		})

	case MsgLiveUpdate:
		text := "live " + msg.Update.Kind.String()
		if id := recordID(msg.Update.Data); id != "" {
			text += " " + id
		}
		m.addEvent(Event{At: msg.At, Resource: msg.Update.Resource, Text: text})

	case MsgRequest:
		m.Requests++
		if msg.Err != nil {
			m.FailedRequests++
			m.addEvent(Event{
				At:       msg.At,
				Resource: "api",
				Text:     fmt.Sprintf("%s failed after %v: %v", msg.Name, msg.Duration.Round(time.Millisecond), msg.Err),
				Failed:   true,
			})
		}

	case msgTick:
		m.Now = time.Time(msg)
		cmd = m.tick()
	}

	return m, cmd
}

// sameResource matches collection names across singular and plural forms,
// so "category" events belong to "categories".
func sameResource(a, b string) bool {
	return singular(strings.ToLower(a)) == singular(strings.ToLower(b))
}

func singular(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "s"):
		return strings.TrimSuffix(s, "s")
	default:
		return s
	}
}

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
