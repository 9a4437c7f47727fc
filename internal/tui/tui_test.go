package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/handiism/albumart-downloader/internal/config"
	"github.com/handiism/albumart-downloader/internal/download"
)

func TestEventSink_Drain(t *testing.T) {
	sink := &eventSink{}
	sink.push(download.ProgressEvent{Message: "one", Level: download.LevelInfo})
	sink.push(download.ProgressEvent{Message: "two", Level: download.LevelError})

	events := sink.drain()
	assert.Len(t, events, 2)
	assert.Equal(t, "one", events[0].Message)
	assert.Empty(t, sink.drain())
}

func TestModel_PrefillsLinksFile(t *testing.T) {
	settings := config.DefaultSettings()
	settings.LinksFile = "albums.txt"

	m := NewModel(settings)
	assert.Equal(t, "albums.txt", m.textInput.Value())
	assert.Equal(t, StateInput, m.state)
}

func TestModel_TabTogglesVerbose(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.True(t, m.verbose)
	assert.Equal(t, config.DefaultSettings().LinksFile, m.textInput.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, updated.(Model).verbose)
}

func TestModel_DrainEventsFiltersVerbose(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.events.push(download.ProgressEvent{Message: "fetching", Level: download.LevelVerbose})
	m.events.push(download.ProgressEvent{Message: "saved", Level: download.LevelSuccess})

	m.drainEvents()
	assert.Equal(t, []LogEntry{{Message: "saved", Level: download.LevelSuccess}}, m.logs)

	m.verbose = true
	m.events.push(download.ProgressEvent{Message: "fetching", Level: download.LevelVerbose})
	m.drainEvents()
	assert.Len(t, m.logs, 2)
}

func TestModel_KeepsLastLogs(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	for i := 0; i < maxLogs+5; i++ {
		m.events.push(download.ProgressEvent{Message: "line", Level: download.LevelInfo})
	}

	m.drainEvents()
	assert.Len(t, m.logs, maxLogs)
}

func TestModel_InitErrorShowsError(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateInitializing

	updated, _ := m.Update(InitDoneMsg{Err: assert.AnError})
	m = updated.(Model)
	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), assert.AnError.Error())
}

func TestModel_EscCancelsRun(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateInitializing

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.Equal(t, StateError, m.state)
	assert.Error(t, m.ctx.Err())
}
