// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/event"
)

// StatusDuration is how long a status message stays on screen.
const StatusDuration = 3 * time.Second

// EventLoadedMsg is sent when event data is fetched.
type EventLoadedMsg struct {
	Data *event.Data
}

// EventsListedMsg is sent when the event list is fetched.
type EventsListedMsg struct {
	Events []*event.Event
}

// SaveResultMsg is sent when a response save finishes. Err is nil on success.
type SaveResultMsg struct {
	Request event.SaveRequest
	Err     error
}

// CopiedMsg is sent after text was written to the clipboard.
type CopiedMsg struct {
	What string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

// LoadEvent fetches one event with all its responses.
func LoadEvent(repo event.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: errors.New("no repository")}
		}
		data, err := repo.GetEventData(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading event %s: %w", id, err)}
		}
		return EventLoadedMsg{Data: data}
	}
}

// ListEvents fetches every event, newest first.
func ListEvents(repo event.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: errors.New("no repository")}
		}
		events, err := repo.ListEvents(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("listing events: %w", err)}
		}
		return EventsListedMsg{Events: events}
	}
}

// SaveResponse persists the active user's response. The result always comes
// back as a SaveResultMsg so the caller can confirm or roll back.
func SaveResponse(repo event.Repository, req event.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return SaveResultMsg{Request: req, Err: errors.New("no repository")}
		}
		if err := repo.SaveResponse(context.Background(), req); err != nil {
			return SaveResultMsg{Request: req, Err: fmt.Errorf("saving response: %w", err)}
		}
		return SaveResultMsg{Request: req}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return CopiedMsg{What: what}
	}
}

// Status shows msg and schedules it to be cleared.
func Status(msg string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return StatusMsgCmd{Msg: msg} },
		ClearStatusAfter(StatusDuration),
	)
}

// ClearStatusAfter emits ClearStatusMsg after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
