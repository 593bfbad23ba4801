package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/aggregate"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/tui/commands"
	"github.com/javiermolinar/overlap/internal/tui/input"
)

// keyMap holds every binding of the grid screen.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Edit     key.Binding
	New      key.Binding
	Save     key.Binding
	Cancel   key.Binding
	Best     key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Copy     key.Binding
	Events   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "right")),
		PrevPage: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page")),
		Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/end drag")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit mine")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new response")),
		Save:     key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Best:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "best times")),
		Filter:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "filter")),
		Clear:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "clear filter")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy best")),
		Events:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "events")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Select, k.Save, k.Best, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PrevPage, k.NextPage},
		{k.Edit, k.New, k.Select, k.Save, k.Cancel},
		{k.Best, k.Filter, k.Clear, k.Copy},
		{k.Events, k.Reload, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.screen {
	case ScreenPrompt:
		return m.handlePromptKeys(msg)
	case ScreenEvents:
		return m.handleEventKeys(msg)
	case ScreenInit:
		return m.handleInitKeys(msg)
	default:
		return m.handleGridKeys(msg)
	}
}

// handleGridKeys handles keys on the grid.
func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layout = m.buildLayout(m.width, m.height)

	case key.Matches(msg, m.keys.Events):
		m.loading = true
		return m, commands.ListEvents(m.repo)

	case key.Matches(msg, m.keys.Reload):
		if m.eventID == "" {
			return m, nil
		}
		m.loading = true
		return m, commands.LoadEvent(m.repo, m.eventID)
	}

	if !s.Loaded() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.PrevPage):
		s.PreviousPage()
		m.cursor.Col = s.Window().LeftMost()
	case key.Matches(msg, m.keys.NextPage):
		s.NextPage()
		m.cursor.Col = s.Window().LeftMost()

	case key.Matches(msg, m.keys.Select):
		if s.Mode() != grid.ModeEdit {
			return m, commands.Status("press e to edit your availability")
		}
		if s.Dragging() {
			mode := s.DragMode()
			LogDragCommit(mode, s.DragEnd())
		} else {
			s.DragStart(m.cursor.Row, m.cursor.Col)
		}

	case key.Matches(msg, m.keys.Edit):
		if s.Mode() == grid.ModeEdit {
			return m, nil
		}
		if name := strings.TrimSpace(m.config.UI.Name); name != "" {
			return m.beginEdit(name, promptEdit)
		}
		return m.openPrompt(promptEdit)

	case key.Matches(msg, m.keys.New):
		if s.Mode() == grid.ModeEdit {
			return m, nil
		}
		return m.openPrompt(promptNew)

	case key.Matches(msg, m.keys.Save):
		if s.Mode() != grid.ModeEdit {
			return m, nil
		}
		return m.save()

	case key.Matches(msg, m.keys.Cancel):
		switch {
		case s.Dragging():
			s.DragCancel()
		case s.Mode() == grid.ModeEdit:
			s.CancelEdit()
			LogModeChange(grid.ModeEdit, grid.ModeView, "cancel")
			return m, commands.Status("edit discarded")
		}

	case key.Matches(msg, m.keys.Best):
		on := s.ToggleBestTimes()
		m.keepCursorVisible()
		if on && s.Summary().Max == 0 {
			return m, commands.Status("nobody is available yet")
		}

	case key.Matches(msg, m.keys.Filter):
		idx := int(msg.String()[0] - '1')
		participants := s.Participants()
		if idx < len(participants) {
			s.ToggleFilter(participants[idx])
		}
	case key.Matches(msg, m.keys.Clear):
		s.SetFilter(nil)

	case key.Matches(msg, m.keys.Copy):
		blocks := s.BestBlocks()
		if len(blocks) == 0 {
			return m, commands.Status("no best times to copy")
		}
		return m, commands.CopyToClipboard("best times", aggregate.FormatBlocks(blocks, s.Event().IsSpecificDates))
	}

	return m, nil
}

// beginEdit enters edit mode for name. promptEdit resumes an existing
// response or starts a new one; promptNew insists on a fresh name.
func (m Model) beginEdit(name string, kind promptKind) (tea.Model, tea.Cmd) {
	s := m.session
	var err error
	if kind == promptEdit {
		err = s.BeginEditExisting(name)
		if errors.Is(err, grid.ErrUnknownParticipant) {
			err = s.BeginEditNew(name)
		}
	} else {
		err = s.BeginEditNew(name)
	}
	if err != nil {
		LogError("begin edit", err)
		return m, commands.Status(fmt.Sprintf("%s: %v", name, err))
	}
	m.screen = ScreenGrid
	LogModeChange(grid.ModeView, grid.ModeEdit, "edit "+name)
	return m, commands.Status("editing as " + s.Alias() + ", space to select, s to save")
}

func (m Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	m.screen = ScreenPrompt
	m.promptKind = kind
	m.prompt.SetValue("")
	if kind == promptNew {
		m.prompt.Prompt = "New name: "
	} else {
		m.prompt.Prompt = "Your name: "
	}
	return m, m.prompt.Focus()
}

// handlePromptKeys handles keys while typing a name.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt.Blur()
		m.screen = ScreenGrid
		return m, nil
	case tea.KeyTab:
		if m.promptKind == promptEdit {
			if name, ok := input.Autocomplete(m.prompt.Value(), m.session.Participants()); ok {
				m.prompt.SetValue(name)
				m.prompt.CursorEnd()
			}
		}
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.prompt.Value())
		if name == "" {
			return m, nil
		}
		m.prompt.Blur()
		m.screen = ScreenGrid
		return m.beginEdit(name, m.promptKind)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleEventKeys handles keys in the event picker.
func (m Model) handleEventKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.eventCursor > 0 {
			m.eventCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.eventCursor < len(m.events)-1 {
			m.eventCursor++
		}
	case msg.Type == tea.KeyEnter:
		if m.eventCursor >= len(m.events) {
			return m, nil
		}
		m.eventID = m.events[m.eventCursor].ID
		m.screen = ScreenGrid
		m.loading = true
		return m, commands.LoadEvent(m.repo, m.eventID)
	case key.Matches(msg, m.keys.Cancel):
		if m.session.Loaded() {
			m.screen = ScreenGrid
		}
	}
	return m, nil
}

// handleInitKeys handles the first-run confirmation.
func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		repo, err := initializeStorage(m.config, m.initState)
		if err != nil {
			m.err = err
			LogError("init", err)
			return m, nil
		}
		if m.repo == nil {
			m.repo = repo
		}
		m.initState = InitState{}
		m.screen = ScreenGrid
		return m, m.Init()
	case "n", "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// save applies the edit locally and sends it to the repository.
func (m Model) save() (tea.Model, tea.Cmd) {
	req, err := m.session.Save()
	if err != nil {
		LogError("save", err)
		return m, commands.Status(err.Error())
	}
	LogSave(req, "optimistic", nil)
	LogModeChange(grid.ModeEdit, grid.ModeView, "save")
	return m, commands.SaveResponse(m.repo, req)
}

// moveCursor moves the cursor, paging the window when it leaves the view.
// An active drag follows the cursor.
func (m *Model) moveCursor(dRow, dCol int) {
	axis := m.session.Axis()
	m.cursor.Row = clamp(m.cursor.Row+dRow, 0, len(axis.Times)-1)
	m.cursor.Col = clamp(m.cursor.Col+dCol, 0, len(axis.Dates)-1)

	w := m.session.Window()
	start, end := w.Visible()
	switch {
	case m.cursor.Col < start:
		m.session.SetLeftMost(m.cursor.Col)
	case m.cursor.Col >= end:
		m.session.SetLeftMost(m.cursor.Col - w.Size() + 1)
	}
	m.scrollToCursor()

	if m.session.Dragging() {
		m.session.DragMove(m.cursor.Row, m.cursor.Col)
	}
}

// keepCursorVisible pulls the cursor into the window after it scrolled.
func (m *Model) keepCursorVisible() {
	start, end := m.session.Window().Visible()
	if m.cursor.Col < start || m.cursor.Col >= end {
		m.cursor.Col = start
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
