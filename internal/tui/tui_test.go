package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/config"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/slot"
	"github.com/javiermolinar/overlap/internal/tui/commands"
)

type fakeRepo struct {
	data    *event.Data
	saveErr error
	saved   []event.SaveRequest
}

func (f *fakeRepo) CreateEvent(ctx context.Context, req event.CreateRequest) (*event.Event, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) GetEventData(ctx context.Context, id string) (*event.Data, error) {
	if f.data == nil || f.data.Event.ID != id {
		return nil, event.ErrEventNotFound
	}
	return f.data, nil
}

func (f *fakeRepo) ListEvents(ctx context.Context) ([]*event.Event, error) {
	if f.data == nil {
		return nil, nil
	}
	return []*event.Event{&f.data.Event}, nil
}

func (f *fakeRepo) SaveResponse(ctx context.Context, req event.SaveRequest) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, req)
	return nil
}

func (f *fakeRepo) DeleteResponse(ctx context.Context, eventID, alias string) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) Close() error {
	return nil
}

// testData is a two-day event from 09:00 to 10:00 with Alice and Bob.
func testData() *event.Data {
	return &event.Data{
		Event: event.Event{
			ID:              "ev1",
			Name:            "Standup",
			IsSpecificDates: true,
			StartTime:       "09:00:00",
			EndTime:         "10:00:00",
			Dates:           []string{"2024-01-01", "2024-01-02"},
		},
		Responses: []event.Response{
			{Alias: "Alice", UserID: "u-alice", Availabilities: []slot.Slot{"2024-01-01 09:00:00", "2024-01-01 09:30:00"}},
			{Alias: "Bob", UserID: "u-bob", Availabilities: []slot.Slot{"2024-01-01 09:00:00"}},
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.UI.Theme = "mocha"
	return cfg
}

// loadedModel returns a model sized to 76x30 with testData loaded.
func loadedModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()
	var r event.Repository
	if repo != nil {
		r = repo
	}
	m := *New(r, testConfig(), WithEvent("ev1"))
	m = update(t, m, tea.WindowSizeMsg{Width: 76, Height: 30})
	m = update(t, m, commands.EventLoadedMsg{Data: testData()})
	if !m.session.Loaded() {
		t.Fatal("session not loaded")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keySpace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}
