package event

import (
	"strings"

	"github.com/javiermolinar/overlap/internal/slot"
)

// SlotIndex maps a slot to the aliases of the participants available then.
// Slots nobody selected are absent.
type SlotIndex map[slot.Slot][]string

// BuildSlotIndex projects responses into a SlotIndex.
func BuildSlotIndex(responses []Response) SlotIndex {
	index := make(SlotIndex)
	for _, r := range responses {
		for _, s := range r.Availabilities {
			index[s] = append(index[s], r.Alias)
		}
	}
	return index
}

// Participants returns the aliases available at s, or an empty slice.
func (ix SlotIndex) Participants(s slot.Slot) []string {
	if p, ok := ix[s]; ok {
		return p
	}
	return []string{}
}

// Axis holds the ordered rows (times) and columns (dates) of the grid.
type Axis struct {
	Dates []string
	Times []string
}

// NewAxis derives the axes from an event.
func NewAxis(e Event) Axis {
	return Axis{
		Dates: SortedDates(e.Dates),
		Times: SortedTimes(e.StartTime, e.EndTime),
	}
}

// Slot returns the slot at the given row and column, or "" when out of range.
func (a Axis) Slot(row, col int) slot.Slot {
	if row < 0 || row >= len(a.Times) || col < 0 || col >= len(a.Dates) {
		return ""
	}
	return slot.Make(a.Times[row], a.Dates[col])
}

// Position returns the row and column of s, or (-1, -1) when s is not on the grid.
func (a Axis) Position(s slot.Slot) (row, col int) {
	date, t, ok := slot.Parse(s)
	if !ok {
		return -1, -1
	}
	row, col = -1, -1
	for i, v := range a.Times {
		if v == t {
			row = i
			break
		}
	}
	for i, v := range a.Dates {
		if v == date {
			col = i
			break
		}
	}
	if row < 0 || col < 0 {
		return -1, -1
	}
	return row, col
}

// Model is the derived, read-only view of one loaded event.
// It is rebuilt from scratch on every Load and never mutated in place.
type Model struct {
	data         *Data
	axis         Axis
	participants []string
	index        SlotIndex
}

// Load derives a new Model from d. A nil d returns m unchanged.
func (m Model) Load(d *Data) Model {
	if d == nil {
		return m
	}
	data := d.Clone()
	aliases := make([]string, 0, len(data.Responses))
	for _, r := range data.Responses {
		aliases = append(aliases, r.Alias)
	}
	return Model{
		data:         data,
		axis:         NewAxis(data.Event),
		participants: SortParticipants(aliases),
		index:        BuildSlotIndex(data.Responses),
	}
}

// Loaded reports whether any data has been loaded.
func (m Model) Loaded() bool {
	return m.data != nil
}

// Data returns a copy of the loaded data, or nil.
func (m Model) Data() *Data {
	return m.data.Clone()
}

// Event returns the loaded event.
func (m Model) Event() Event {
	if m.data == nil {
		return Event{}
	}
	return m.data.Event
}

// Axis returns the grid axes.
func (m Model) Axis() Axis {
	return m.axis
}

// Participants returns all aliases sorted case-insensitively.
func (m Model) Participants() []string {
	return m.participants
}

// Index returns the slot participant index.
func (m Model) Index() SlotIndex {
	return m.index
}

// Response returns the response whose alias matches case-insensitively.
func (m Model) Response(alias string) (Response, bool) {
	if m.data == nil {
		return Response{}, false
	}
	for _, r := range m.data.Responses {
		if strings.EqualFold(r.Alias, alias) {
			return r, true
		}
	}
	return Response{}, false
}

// HasParticipant reports whether alias is taken, ignoring case.
func (m Model) HasParticipant(alias string) bool {
	_, ok := m.Response(alias)
	return ok
}
