package eventfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
)

// Wednesday.
var refNow = time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		yaml         string
		wantDates    []string
		wantSpecific bool
	}{
		{
			name: "specific dates",
			yaml: `
name: Planning
start: "09:00"
end: "12:00"
dates: [2025-02-03, 2025-02-04]
`,
			wantDates:    []string{"2025-02-03", "2025-02-04"},
			wantSpecific: true,
		},
		{
			name: "weekdays",
			yaml: `
name: Weekly sync
start: "10:00"
end: "11:00"
weekdays: [mon, Wednesday]
`,
			wantDates:    []string{"2012-01-02", "2012-01-04"},
			wantSpecific: false,
		},
		{
			name: "consecutive days",
			yaml: `
name: Offsite
start: "08:00"
end: "18:00"
from: tomorrow
days: 3
`,
			wantDates:    []string{"2025-01-16", "2025-01-17", "2025-01-18"},
			wantSpecific: true,
		},
		{
			name: "rrule",
			yaml: `
name: Retro
start: "15:00"
end: "16:00"
from: 2025-01-20
rrule: "FREQ=WEEKLY;BYDAY=MO"
count: 3
`,
			wantDates:    []string{"2025-01-20", "2025-01-27", "2025-02-03"},
			wantSpecific: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse(strings.NewReader(tt.yaml), refNow)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !slices.Equal(req.Dates, tt.wantDates) {
				t.Errorf("Dates = %v, want %v", req.Dates, tt.wantDates)
			}
			if req.IsSpecificDates != tt.wantSpecific {
				t.Errorf("IsSpecificDates = %v, want %v", req.IsSpecificDates, tt.wantSpecific)
			}
			if len(req.StartTime) != 8 || len(req.EndTime) != 8 {
				t.Errorf("times not normalized: %s-%s", req.StartTime, req.EndTime)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "no date source",
			yaml:    "name: x\nstart: \"09:00\"\nend: \"10:00\"\n",
			wantErr: ErrNoDateSource,
		},
		{
			name:    "two date sources",
			yaml:    "name: x\nstart: \"09:00\"\nend: \"10:00\"\ndates: [2025-02-03]\nweekdays: [mon]\n",
			wantErr: ErrMultipleDateSource,
		},
		{
			name:    "bad weekday",
			yaml:    "name: x\nstart: \"09:00\"\nend: \"10:00\"\nweekdays: [funday]\n",
			wantErr: dateutil.ErrInvalidWeekday,
		},
		{
			name:    "past start",
			yaml:    "name: x\nstart: \"09:00\"\nend: \"10:00\"\nfrom: 2024-01-01\ndays: 2\n",
			wantErr: dateutil.ErrDateInPast,
		},
		{
			name:    "unaligned time",
			yaml:    "name: x\nstart: \"09:10\"\nend: \"10:00\"\ndates: [2025-02-03]\n",
			wantErr: event.ErrUnalignedTime,
		},
		{
			name:    "missing name",
			yaml:    "start: \"09:00\"\nend: \"10:00\"\ndates: [2025-02-03]\n",
			wantErr: event.ErrEmptyName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml), refNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("name: x\nlocation: somewhere\n"), refNow)
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.yaml")
	content := "name: Lunch\nstart: \"12:00\"\nend: \"13:30\"\ntime_zone: Europe/Madrid\ndates: [2025-02-03]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	req, err := Load(path, refNow)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if req.Name != "Lunch" || req.TimeZone != "Europe/Madrid" || req.EndTime != "13:30:00" {
		t.Errorf("Load() = %+v", req)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), refNow); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	f := File{Name: "Sync", Start: "09:00", End: "10:00", Weekdays: []string{"tue"}}
	if err := Encode(&buf, f); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "dates:") || !strings.Contains(out, "weekdays:") {
		t.Errorf("unexpected YAML:\n%s", out)
	}

	req, err := Parse(&buf, refNow)
	if err != nil {
		t.Fatalf("Parse(Encode()) error = %v", err)
	}
	if !slices.Equal(req.Dates, []string{"2012-01-03"}) {
		t.Errorf("Dates = %v", req.Dates)
	}
}
