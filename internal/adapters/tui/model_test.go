package tui_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/courseware/internal/adapters/tui"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
)

var at = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func updateModel(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*tui.Model), cmd
}

func seededModel(t *testing.T) *tui.Model {
	t.Helper()
	base := tui.NewModel(nil).WithDisableTick()
	m := &base
	for i, name := range []string{"categories", "clients", "courses"} {
		m, _ = updateModel(m, tui.MsgSnapshot{Resource: name, Count: i + 1, Version: 1, At: at})
	}
	return m
}

func TestModel_Snapshot(t *testing.T) {
	base := tui.NewModel(nil).WithDisableTick()
	m := &base

	m, _ = updateModel(m, tui.MsgSnapshot{Resource: "courses", Count: 12, Version: 1, At: at})
	m, _ = updateModel(m, tui.MsgSnapshot{Resource: "clients", Count: 3, Version: 2, FromCache: true, At: at})

	require.Len(t, m.Resources, 2)
	assert.Equal(t, "courses", m.Resources[0].Name)
	assert.Equal(t, tui.StatusFresh, m.Resources[0].Status)
	assert.Equal(t, 12, m.Resources[0].Count)
	assert.Equal(t, tui.StatusCached, m.ResourceMap["clients"].Status)

	require.Len(t, m.Events, 2)
	assert.Equal(t, "loaded 12 record(s) from network", m.Events[0].Text)
	assert.Equal(t, "loaded 3 record(s) from cache", m.Events[1].Text)
}

func TestModel_Change(t *testing.T) {
	m := seededModel(t)

	m, _ = updateModel(m, tui.MsgChange{Resource: "courses", Count: 4, Version: 2, At: at.Add(time.Minute)})

	node := m.ResourceMap["courses"]
	assert.Equal(t, tui.StatusChanged, node.Status)
	assert.Equal(t, uint64(2), node.Version)
	assert.Equal(t, at.Add(time.Minute), node.UpdatedAt)
	assert.Equal(t, "changed: 4 record(s), version 2", m.Events[len(m.Events)-1].Text)
}

func TestModel_LiveUpdate(t *testing.T) {
	m := seededModel(t)

	m, _ = updateModel(m, tui.MsgLiveUpdate{
		Update: domain.LiveUpdate{Kind: domain.UpdateCreated, Resource: "category", Data: json.RawMessage(`{"_id":"c7"}`)},
		At:     at,
	})

	last := m.Events[len(m.Events)-1]
	assert.Equal(t, "category", last.Resource)
	assert.Equal(t, "live created c7", last.Text)
	assert.Len(t, m.Resources, 3, "live updates do not add collections")
}

func TestModel_Request(t *testing.T) {
	m := seededModel(t)
	before := len(m.Events)

	m, _ = updateModel(m, tui.MsgRequest{Name: "api GET /courses", Duration: time.Millisecond})
	assert.Equal(t, 1, m.Requests)
	assert.Len(t, m.Events, before, "successful requests are only counted")

	m, _ = updateModel(m, tui.MsgRequest{Name: "api GET /courses", Duration: 1500 * time.Microsecond, Err: zerr.New("boom"), At: at})
	assert.Equal(t, 2, m.Requests)
	assert.Equal(t, 1, m.FailedRequests)

	last := m.Events[len(m.Events)-1]
	assert.True(t, last.Failed)
	assert.Equal(t, "api GET /courses failed after 2ms: boom", last.Text)
}

func TestModel_EventsAreCapped(t *testing.T) {
	base := tui.NewModel(nil).WithDisableTick()
	base.MaxEvents = 5
	m := &base

	for i := range 12 {
		m, _ = updateModel(m, tui.MsgChange{Resource: "courses", Count: i, Version: uint64(i), At: at})
	}

	require.Len(t, m.Events, 5)
	assert.Equal(t, "changed: 11 record(s), version 11", m.Events[4].Text)
	assert.Equal(t, "changed: 7 record(s), version 7", m.Events[0].Text)
}

func TestModel_Navigation(t *testing.T) {
	m := seededModel(t)
	assert.True(t, m.FollowMode)

	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.SelectedIdx)
	assert.False(t, m.FollowMode, "FollowMode should be disabled on manual nav")

	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.SelectedIdx, "selection stops at the last collection")

	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.SelectedIdx)

	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.FollowMode)

	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.FollowMode)
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := seededModel(t)
			_, cmd := updateModel(m, key)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestModel_VisibleEvents(t *testing.T) {
	m := seededModel(t)
	m, _ = updateModel(m, tui.MsgLiveUpdate{Update: domain.LiveUpdate{Kind: domain.UpdateDeleted, Resource: "course"}, At: at})
	m, _ = updateModel(m, tui.MsgLiveUpdate{Update: domain.LiveUpdate{Kind: domain.UpdateUpdated, Resource: "category"}, At: at})

	assert.Len(t, m.VisibleEvents(), 5)

	// Select "courses" and stop following.
	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})

	got := m.VisibleEvents()
	require.Len(t, got, 2)
	assert.Equal(t, "courses", got[0].Resource)
	assert.Equal(t, "course", got[1].Resource)

	m.FollowMode = true
	m.EventHeight = 2
	got = m.VisibleEvents()
	require.Len(t, got, 2)
	assert.Equal(t, "category", got[1].Resource)
}

func TestModel_WindowSize(t *testing.T) {
	m := seededModel(t)

	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 35, m.ListWidth)
	assert.Equal(t, 100-35-3, m.EventWidth)
	assert.Positive(t, m.ListHeight)
	assert.Less(t, m.ListHeight, 40)
	assert.Equal(t, m.ListHeight, m.EventHeight)
}

func TestModel_ScrollKeepsSelectionVisible(t *testing.T) {
	base := tui.NewModel(nil).WithDisableTick()
	m := &base
	for i := range 10 {
		m, _ = updateModel(m, tui.MsgSnapshot{Resource: fmt.Sprintf("r%d", i), At: at})
	}
	m.ListHeight = 3

	for range 5 {
		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 5, m.SelectedIdx)
	assert.Equal(t, 3, m.ListOffset)

	for range 5 {
		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.ListOffset)
}

func TestModel_Tick(t *testing.T) {
	base := tui.NewModel(nil)
	m := &base

	now := at.Add(90 * time.Second)
	m, cmd := updateModel(m, tui.TickMsg(now))
	assert.Equal(t, now, m.Now)
	assert.NotNil(t, cmd, "tick reschedules itself")

	m.DisableTick = true
	_, cmd = updateModel(m, tui.TickMsg(now))
	assert.Nil(t, cmd)
}
