package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = m.buildLayout(m.width, m.height)
		m.session.SetWindowSize(m.layout.Columns)
		m.keepCursorVisible()
		m.scrollToCursor()
		return m, nil

	case commands.EventLoadedMsg:
		m.loading = false
		m.session.Load(msg.Data)
		LogLoad(msg.Data)
		m.screen = ScreenGrid
		m.layout = m.buildLayout(m.width, m.height)
		m.clampCursor()
		return m, nil

	case commands.EventsListedMsg:
		m.loading = false
		m.events = msg.Events
		m.eventCursor = 0
		if len(m.events) == 0 {
			return m, commands.Status("no events yet, create one with `overlap create`")
		}
		m.screen = ScreenEvents
		return m, nil

	case commands.SaveResultMsg:
		if msg.Err != nil {
			LogSave(msg.Request, "rollback", msg.Err)
			if err := m.session.Rollback(); err != nil {
				LogError("rollback", err)
			}
			return m.setError(msg.Err)
		}
		LogSave(msg.Request, "confirmed", nil)
		m.session.ConfirmSave()
		return m, tea.Batch(
			commands.Status("saved "+msg.Request.Alias),
			commands.LoadEvent(m.repo, msg.Request.EventID),
		)

	case commands.CopiedMsg:
		return m, commands.Status("copied " + msg.What)

	case commands.ErrMsg:
		m.loading = false
		LogError("command", msg.Err)
		return m.setError(msg.Err)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(commands.StatusDuration)
		return m, nil

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.screen == ScreenPrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) setError(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusTime = time.Now().Add(5 * time.Second)
	return m, commands.ClearStatusAfter(5 * time.Second)
}

// clampCursor keeps the cursor on the grid after the axes changed.
func (m *Model) clampCursor() {
	axis := m.session.Axis()
	m.cursor.Row = clamp(m.cursor.Row, 0, len(axis.Times)-1)
	m.cursor.Col = clamp(m.cursor.Col, 0, len(axis.Dates)-1)
	m.keepCursorVisible()
	m.scrollToCursor()
}
