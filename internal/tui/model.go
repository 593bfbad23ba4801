// Package tui provides the terminal user interface for overlap.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/config"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/tui/commands"
	"github.com/javiermolinar/overlap/internal/tui/theme"
)

// Screen is what currently owns the keyboard.
type Screen int

const (
	ScreenGrid   Screen = iota
	ScreenPrompt        // Typing a participant name
	ScreenEvents        // Picking an event
	ScreenInit          // First run, waiting for confirmation
)

// promptKind tells what a submitted name is used for.
type promptKind int

const (
	promptEdit promptKind = iota // Edit an existing response, or start one
	promptNew                    // Always start a new response
)

// Position is the keyboard cursor in absolute grid coordinates.
type Position struct {
	Row int // Index into the time axis
	Col int // Index into the date axis
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Grid state, shared across model copies
	session *grid.Session
	eventID string

	cursor    Position
	rowOffset int // First visible row
	screen    Screen
	loading   bool

	// Event picker
	events      []*event.Event
	eventCursor int

	// Name prompt
	prompt     textinput.Model
	promptKind promptKind

	keys     keyMap
	help     help.Model
	showHelp bool

	initState InitState

	// Terminal dimensions and layout
	width  int
	height int
	layout Layout

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithEvent opens the given event on start.
func WithEvent(id string) ModelOption {
	return func(m *Model) {
		m.eventID = id
	}
}

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.screen = ScreenInit
		}
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 64
	ti.Width = 30
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.PromptStyle
	ti.PlaceholderStyle = styles.MutedStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.MutedStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.MutedStyle

	m := &Model{
		repo:   repo,
		config: cfg,
		theme:  t,
		styles: styles,
		session: grid.NewSession(grid.Options{
			WindowSize: cfg.Grid.ViewWindowSize,
			Dim:        cfg.Grid.BestTimesDim,
		}),
		screen: ScreenGrid,
		prompt: ti,
		keys:   defaultKeyMap(),
		help:   h,
	}
	m.layout = m.buildLayout(0, 0)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit {
		return nil
	}
	if m.eventID != "" {
		return commands.LoadEvent(m.repo, m.eventID)
	}
	return commands.ListEvents(m.repo)
}

// Session exposes the grid session, mainly for tests.
func (m Model) Session() *grid.Session {
	return m.session
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(repo, cfg, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo event.Repository, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			repo, err = OpenRepo(state.DBPath)
			if err != nil {
				return err
			}
		}
	}

	model := New(repo, cfg, append([]ModelOption{WithInitState(initState)}, opts...)...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}
