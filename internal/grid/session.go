// Package grid holds the state of one viewer session over an event grid:
// the loaded data, the VIEW/EDIT mode, the active user's own selection,
// the drag engine and the view window.
package grid

import (
	"errors"
	"slices"
	"strings"

	"github.com/javiermolinar/overlap/internal/aggregate"
	"github.com/javiermolinar/overlap/internal/dragselect"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/selection"
	"github.com/javiermolinar/overlap/internal/slot"
	"github.com/javiermolinar/overlap/internal/viewwindow"
)

// Session errors.
var (
	ErrNameTaken          = errors.New("name is already taken")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrNotEditing         = errors.New("not in edit mode")
	ErrNoEvent            = errors.New("no event loaded")
	ErrNothingToRollback  = errors.New("no pending save to roll back")
)

// DefaultWindowSize is the number of date columns shown at once.
const DefaultWindowSize = 7

// Mode is the grid mode.
type Mode int

const (
	// ModeView shows the aggregate of every response.
	ModeView Mode = iota
	// ModeEdit lets the active user select their own slots.
	ModeEdit
)

// String returns a readable mode name.
func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "view"
}

// Options configures a Session.
type Options struct {
	WindowSize int
	// Dim is the intensity of non-best slots in best-times mode.
	Dim float64
}

// Session is the state container owned by the top-level view.
type Session struct {
	opts Options

	model  event.Model
	window viewwindow.Window

	mode   Mode
	alias  string
	userID string
	// Saved selection of the active user, only meaningful in ModeEdit.
	selected selection.Set[slot.Slot]
	engine   *dragselect.Engine[string, string, slot.Slot]

	bestTimes bool
	filter    []string
	counter   aggregate.Counter
	summary   aggregate.Summary

	// Data as it was before the last optimistic save.
	snapshot *event.Data
}

// ownSelection exposes the active user's selection to the drag engine.
type ownSelection struct {
	s *Session
}

func (o ownSelection) IsSelected(k slot.Slot) bool { return o.s.selected.Has(k) }

func (o ownSelection) AddSelected(keys []slot.Slot) {
	o.s.selected = o.s.selected.Add(keys)
}

func (o ownSelection) RemoveSelected(keys []slot.Slot) {
	o.s.selected = o.s.selected.Remove(keys)
}

// NewSession creates an empty session in ModeView.
func NewSession(opts Options) *Session {
	if opts.WindowSize <= 0 {
		opts.WindowSize = DefaultWindowSize
	}
	if opts.Dim <= 0 {
		opts.Dim = aggregate.DefaultDim
	}
	s := &Session{
		opts:   opts,
		window: viewwindow.New(opts.WindowSize, 0),
	}
	s.engine = dragselect.New[string, string, slot.Slot](nil, nil, slot.Make, ownSelection{s})
	return s
}

// Load swaps in freshly fetched data. A nil d is ignored so a transient bad
// response never clears good data. Loading a different event resets the view
// window, the filter and any edit in progress.
func (s *Session) Load(d *event.Data) {
	if d == nil {
		return
	}
	prevID := s.model.Event().ID
	s.model = s.model.Load(d)

	axis := s.model.Axis()
	s.engine.SetAxes(axis.Times, axis.Dates)
	s.window = s.window.SetTotal(len(axis.Dates))

	if prevID != s.model.Event().ID {
		s.window = s.window.Reset()
		s.filter = nil
		s.snapshot = nil
		s.exitEdit()
	}
	s.refresh()
}

// refresh recomputes the derived counts. It runs after every change to the
// data or the filter.
func (s *Session) refresh() {
	axis := s.model.Axis()
	s.counter = aggregate.NewCounter(s.model.Index(), s.model.Participants(), s.filter)
	s.summary = aggregate.Summarize(s.counter, axis.Dates, axis.Times)
}

// Loaded reports whether an event has been loaded.
func (s *Session) Loaded() bool {
	return s.model.Loaded()
}

// Event returns the loaded event.
func (s *Session) Event() event.Event {
	return s.model.Event()
}

// Data returns a copy of the loaded data.
func (s *Session) Data() *event.Data {
	return s.model.Data()
}

// Axis returns the time rows and date columns.
func (s *Session) Axis() event.Axis {
	return s.model.Axis()
}

// Participants returns every participant alias in display order.
func (s *Session) Participants() []string {
	return s.model.Participants()
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Alias returns the active user in ModeEdit.
func (s *Session) Alias() string {
	return s.alias
}

// Selected returns the active user's selection, sorted.
func (s *Session) Selected() []slot.Slot {
	return s.selected.Items()
}

// BeginEditNew enters ModeEdit for a participant that has not responded yet.
func (s *Session) BeginEditNew(name string) error {
	if !s.model.Loaded() {
		return ErrNoEvent
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if s.model.HasParticipant(name) {
		return ErrNameTaken
	}
	s.enterEdit(name, "", nil)
	return nil
}

// BeginEditExisting enters ModeEdit for an existing participant, seeded with
// their saved availability.
func (s *Session) BeginEditExisting(alias string) error {
	if !s.model.Loaded() {
		return ErrNoEvent
	}
	r, ok := s.model.Response(alias)
	if !ok {
		return ErrUnknownParticipant
	}
	s.enterEdit(r.Alias, r.UserID, r.Availabilities)
	return nil
}

func (s *Session) enterEdit(alias, userID string, slots []slot.Slot) {
	s.engine.Cancel()
	s.mode = ModeEdit
	s.alias = alias
	s.userID = userID
	s.selected = s.selected.Replace(slots)
}

// CancelEdit leaves ModeEdit without saving.
func (s *Session) CancelEdit() {
	s.exitEdit()
}

func (s *Session) exitEdit() {
	s.engine.Cancel()
	s.mode = ModeView
	s.alias = ""
	s.userID = ""
	s.selected = selection.Set[slot.Slot]{}
}

// DragStart begins a drag at the given absolute row and column.
func (s *Session) DragStart(row, col int) {
	if s.mode != ModeEdit {
		return
	}
	s.engine.Start(row, col)
}

// DragMove extends the pending rectangle.
func (s *Session) DragMove(row, col int) {
	if s.mode != ModeEdit {
		return
	}
	s.engine.Move(row, col)
}

// DragEnd commits the pending rectangle and returns the affected slots.
func (s *Session) DragEnd() []slot.Slot {
	if s.mode != ModeEdit {
		return nil
	}
	return s.engine.End()
}

// DragCancel drops the pending rectangle without committing it.
func (s *Session) DragCancel() {
	s.engine.Cancel()
}

// HandlePointer feeds a hit-tested pointer event to the drag engine.
func (s *Session) HandlePointer(ev dragselect.PointerEvent) []slot.Slot {
	if s.mode != ModeEdit {
		return nil
	}
	return s.engine.Handle(ev)
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	return s.engine.Dragging()
}

// DragMode returns whether the pending drag adds or removes.
func (s *Session) DragMode() dragselect.Mode {
	return s.engine.Mode()
}

// Save leaves ModeEdit and applies the active user's response to the local
// data right away. The host sends the returned request and then calls
// ConfirmSave or Rollback.
func (s *Session) Save() (event.SaveRequest, error) {
	if s.mode != ModeEdit {
		return event.SaveRequest{}, ErrNotEditing
	}
	s.engine.Cancel()

	req := event.SaveRequest{
		EventID:        s.model.Event().ID,
		Alias:          s.alias,
		UserID:         s.userID,
		Availabilities: s.selected.Items(),
	}

	s.snapshot = s.model.Data()
	s.model = s.model.Load(s.snapshot.Upsert(req.Response()))
	s.exitEdit()
	s.refresh()
	return req, nil
}

// SavePending reports whether a save awaits confirmation.
func (s *Session) SavePending() bool {
	return s.snapshot != nil
}

// ConfirmSave drops the pre-save snapshot once the save succeeded.
func (s *Session) ConfirmSave() {
	s.snapshot = nil
}

// Rollback restores the data as it was before the last Save.
func (s *Session) Rollback() error {
	if s.snapshot == nil {
		return ErrNothingToRollback
	}
	s.model = s.model.Load(s.snapshot)
	s.snapshot = nil
	s.refresh()
	return nil
}

// BestTimes reports whether best-times highlighting is on.
func (s *Session) BestTimes() bool {
	return s.bestTimes
}

// ToggleBestTimes flips best-times highlighting. Turning it on scrolls the
// window to the first column holding a best slot unless it is already visible.
func (s *Session) ToggleBestTimes() bool {
	s.bestTimes = !s.bestTimes
	if s.bestTimes {
		if col := s.summary.FirstBestColumn; col >= 0 && !s.window.Contains(col) {
			s.window = s.window.SetLeftMost(col)
		}
	}
	return s.bestTimes
}

// Summary returns the best-times summary for the current filter.
func (s *Session) Summary() aggregate.Summary {
	return s.summary
}

// BestBlocks merges the best slots into contiguous blocks per date.
func (s *Session) BestBlocks() []aggregate.Block {
	return aggregate.Blocks(s.summary.BestSlots)
}

// Filter returns the aliases the aggregate is restricted to.
func (s *Session) Filter() []string {
	return slices.Clone(s.filter)
}

// SetFilter restricts the aggregate to the given aliases. Empty means everyone.
// Aliases that are not participants are dropped.
func (s *Session) SetFilter(aliases []string) {
	participants := s.model.Participants()
	s.filter = nil
	for _, a := range aliases {
		if slices.Contains(participants, a) && !slices.Contains(s.filter, a) {
			s.filter = append(s.filter, a)
		}
	}
	s.refresh()
}

// ToggleFilter adds alias to the filter, or removes it when present.
// Unknown aliases are ignored.
func (s *Session) ToggleFilter(alias string) {
	if i := slices.Index(s.filter, alias); i >= 0 {
		s.filter = slices.Delete(slices.Clone(s.filter), i, i+1)
	} else if slices.Contains(s.model.Participants(), alias) {
		s.filter = append(slices.Clone(s.filter), alias)
	}
	s.refresh()
}

// Filtered reports whether alias is part of a non-empty filter.
func (s *Session) Filtered(alias string) bool {
	return slices.Contains(s.filter, alias)
}

// Window returns the view window.
func (s *Session) Window() viewwindow.Window {
	return s.window
}

// NextPage scrolls one window forward.
func (s *Session) NextPage() {
	s.window = s.window.NextPage()
}

// PreviousPage scrolls one window back.
func (s *Session) PreviousPage() {
	s.window = s.window.PreviousPage()
}

// SetLeftMost scrolls so col is the first visible column.
func (s *Session) SetLeftMost(col int) {
	s.window = s.window.SetLeftMost(col)
}

// SetWindowSize changes how many columns are visible.
func (s *Session) SetWindowSize(size int) {
	s.window = s.window.SetSize(size)
}

// VisibleColumns returns the absolute column indices in view.
func (s *Session) VisibleColumns() []int {
	start, end := s.window.Visible()
	cols := make([]int, 0, end-start)
	for c := start; c < end; c++ {
		cols = append(cols, c)
	}
	return cols
}

// CellView is everything a renderer needs to draw one cell.
type CellView struct {
	Slot         slot.Slot
	Count        int
	Total        int
	Intensity    float64
	Selected     bool
	InDrag       bool
	Borders      dragselect.Borders
	Participants []string
}

// Cell describes the cell at an absolute row and column. Selected previews
// the pending rectangle, so a cell inside an adding drag shows as selected.
func (s *Session) Cell(row, col int) CellView {
	sl := s.model.Axis().Slot(row, col)
	if sl == "" {
		return CellView{}
	}
	count := s.counter.SelectedCount(sl)
	total := s.counter.TotalFiltered()
	policy := aggregate.Policy{BestTimes: s.bestTimes, Dim: s.opts.Dim}

	c := CellView{
		Slot:         sl,
		Count:        count,
		Total:        total,
		Intensity:    aggregate.Intensity(count, s.summary, total, policy),
		Participants: s.counter.Participants(sl),
	}
	if s.mode == ModeEdit {
		c.Selected = s.selected.Has(sl)
		if s.engine.InSelectionArea(row, col) {
			c.InDrag = true
			c.Selected = s.engine.Mode() == dragselect.ModeAdding
			c.Borders = s.engine.Borders(row, col)
		}
	}
	return c
}
