package event

import (
	"errors"
	"slices"
	"testing"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/slot"
)

func TestSortedTimes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "inclusive end",
			start: "09:00:00",
			end:   "10:00:00",
			want:  []string{"09:00:00", "09:30:00", "10:00:00"},
		},
		{
			name:  "unaligned end rounds up",
			start: "09:00:00",
			end:   "09:45:00",
			want:  []string{"09:00:00", "09:30:00", "10:00:00"},
		},
		{
			name:  "midnight end stops before wraparound",
			start: "22:00:00",
			end:   "00:00:00",
			want:  []string{"22:00:00", "22:30:00", "23:00:00", "23:30:00"},
		},
		{
			name:  "invalid start",
			start: "nine",
			end:   "10:00:00",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedTimes(tt.start, tt.end)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SortedTimes(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestSortedTimes_MidnightEndDropsWrappedRow(t *testing.T) {
	got := SortedTimes("09:00:00", "00:00:00")
	if len(got) != 30 {
		t.Fatalf("len = %d, want 30", len(got))
	}
	if last := got[len(got)-1]; last != "23:30:00" {
		t.Errorf("last = %q, want 23:30:00", last)
	}
}

func TestSortedTimes_FullDay(t *testing.T) {
	got := SortedTimes("00:00:00", "00:00:00")
	if len(got) != 48 {
		t.Fatalf("len = %d, want 48", len(got))
	}
	if got[0] != "00:00:00" || got[47] != "23:30:00" {
		t.Errorf("got first=%q last=%q", got[0], got[47])
	}
}

func TestSortedDates(t *testing.T) {
	in := []string{"2024-01-10", "2023-12-31", "2024-01-02", "2024-01-02"}
	got := SortedDates(in)
	want := []string{"2023-12-31", "2024-01-02", "2024-01-02", "2024-01-10"}
	if !slices.Equal(got, want) {
		t.Errorf("SortedDates() = %v, want %v", got, want)
	}
	if in[0] != "2024-01-10" {
		t.Error("SortedDates must not modify its input")
	}
}

func TestSortParticipants(t *testing.T) {
	got := SortParticipants([]string{"carol", "Bob", "alice", "Émile", "Eve"})
	want := []string{"alice", "Bob", "carol", "Émile", "Eve"}
	if !slices.Equal(got, want) {
		t.Errorf("SortParticipants() = %v, want %v", got, want)
	}
}

func TestBuildSlotIndex(t *testing.T) {
	responses := []Response{
		{Alias: "Alice", Availabilities: []slot.Slot{"2024-01-01 09:00:00", "2024-01-01 09:30:00"}},
		{Alias: "Bob", Availabilities: []slot.Slot{"2024-01-01 09:00:00"}},
	}
	index := BuildSlotIndex(responses)

	if got := index.Participants("2024-01-01 09:00:00"); !slices.Equal(got, []string{"Alice", "Bob"}) {
		t.Errorf("Participants(09:00) = %v", got)
	}
	if got := index.Participants("2024-01-01 09:30:00"); !slices.Equal(got, []string{"Alice"}) {
		t.Errorf("Participants(09:30) = %v", got)
	}

	missing := index.Participants("2024-01-01 10:00:00")
	if missing == nil || len(missing) != 0 {
		t.Errorf("Participants(missing) = %#v, want empty non-nil slice", missing)
	}
	if _, ok := index["2024-01-01 10:00:00"]; ok {
		t.Error("slots without participants must be absent from the index")
	}
}

func TestAxis_SlotAndPosition(t *testing.T) {
	axis := NewAxis(Event{
		StartTime: "09:00:00",
		EndTime:   "10:00:00",
		Dates:     []string{"2024-01-02", "2024-01-01"},
	})

	if got := axis.Slot(1, 0); got != "2024-01-01 09:30:00" {
		t.Errorf("Slot(1, 0) = %q", got)
	}
	if got := axis.Slot(3, 0); got != "" {
		t.Errorf("Slot(3, 0) = %q, want empty", got)
	}

	row, col := axis.Position("2024-01-02 10:00:00")
	if row != 2 || col != 1 {
		t.Errorf("Position() = (%d, %d), want (2, 1)", row, col)
	}
	row, col = axis.Position("2024-01-05 10:00:00")
	if row != -1 || col != -1 {
		t.Errorf("Position(off grid) = (%d, %d), want (-1, -1)", row, col)
	}
}

func TestModel_LoadNilKeepsState(t *testing.T) {
	data := &Data{
		Event:     Event{ID: "e1", StartTime: "09:00:00", EndTime: "10:00:00", Dates: []string{"2024-01-01"}},
		Responses: []Response{{Alias: "Alice", Availabilities: []slot.Slot{"2024-01-01 09:00:00"}}},
	}

	m := Model{}.Load(data)
	after := m.Load(nil)

	if !after.Loaded() {
		t.Fatal("Load(nil) must keep prior state")
	}
	if after.Event().ID != "e1" {
		t.Errorf("Event().ID = %q, want e1", after.Event().ID)
	}
	if len(after.Index()) != 1 {
		t.Errorf("index size = %d, want 1", len(after.Index()))
	}
}

func TestModel_LoadIsolatedFromInput(t *testing.T) {
	data := &Data{
		Event:     Event{ID: "e1", StartTime: "09:00:00", EndTime: "10:00:00", Dates: []string{"2024-01-01"}},
		Responses: []Response{{Alias: "Alice", Availabilities: []slot.Slot{"2024-01-01 09:00:00"}}},
	}
	m := Model{}.Load(data)

	data.Responses[0].Availabilities[0] = "2024-01-01 09:30:00"
	data.Responses = append(data.Responses, Response{Alias: "Bob"})

	if len(m.Participants()) != 1 {
		t.Errorf("participants = %v, want only Alice", m.Participants())
	}
	r, _ := m.Response("alice")
	if r.Availabilities[0] != "2024-01-01 09:00:00" {
		t.Error("model must not observe mutations of the loaded data")
	}
}

func TestModel_HasParticipantIgnoresCase(t *testing.T) {
	m := Model{}.Load(&Data{Responses: []Response{{Alias: "Alice"}}})
	if !m.HasParticipant("ALICE") {
		t.Error("HasParticipant should ignore case")
	}
	if m.HasParticipant("Bob") {
		t.Error("HasParticipant(Bob) should be false")
	}
}

func TestData_Upsert(t *testing.T) {
	d := &Data{Responses: []Response{
		{Alias: "Alice", Availabilities: []slot.Slot{"2024-01-01 09:00:00"}},
	}}

	replaced := d.Upsert(Response{Alias: "alice", Availabilities: []slot.Slot{"2024-01-01 10:00:00"}})
	if len(replaced.Responses) != 1 {
		t.Fatalf("len = %d, want 1", len(replaced.Responses))
	}
	if replaced.Responses[0].Availabilities[0] != "2024-01-01 10:00:00" {
		t.Error("Upsert should replace the existing response wholesale")
	}
	if d.Responses[0].Availabilities[0] != "2024-01-01 09:00:00" {
		t.Error("Upsert must not modify the receiver")
	}

	inserted := d.Upsert(Response{Alias: "Bob"})
	if len(inserted.Responses) != 2 {
		t.Errorf("len = %d, want 2", len(inserted.Responses))
	}
}

func TestCreateRequest_Validate(t *testing.T) {
	valid := func() CreateRequest {
		return CreateRequest{
			Name:            "Team sync",
			StartTime:       "09:00",
			EndTime:         "17:00:00",
			IsSpecificDates: true,
			Dates:           []string{"2024-01-01"},
		}
	}

	t.Run("valid request is normalized", func(t *testing.T) {
		req := valid()
		if err := req.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.StartTime != "09:00:00" {
			t.Errorf("StartTime = %q, want 09:00:00", req.StartTime)
		}
	})

	t.Run("midnight end is allowed", func(t *testing.T) {
		req := valid()
		req.EndTime = "00:00:00"
		if err := req.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"empty name", func(r *CreateRequest) { r.Name = "  " }, ErrEmptyName},
		{"bad start", func(r *CreateRequest) { r.StartTime = "9am" }, ErrInvalidTimeFormat},
		{"unaligned end", func(r *CreateRequest) { r.EndTime = "17:15:00" }, ErrUnalignedTime},
		{"end before start", func(r *CreateRequest) { r.EndTime = "08:00:00" }, ErrEndBeforeStart},
		{"no dates", func(r *CreateRequest) { r.Dates = nil }, ErrNoDates},
		{"bad date", func(r *CreateRequest) { r.Dates = []string{"01/02/2024"} }, dateutil.ErrInvalidDateFormat},
		{"bad zone", func(r *CreateRequest) { r.TimeZone = "Mars/Olympus" }, ErrInvalidTimeZone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			if err := req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
