package slot

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		time string
		date string
		want Slot
	}{
		{"with date", "09:00:00", "2024-01-01", "2024-01-01 09:00:00"},
		{"placeholder date", "09:30:00", "", "2000-01-01 09:30:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.time, tt.date); got != tt.want {
				t.Errorf("Make(%q, %q) = %q, want %q", tt.time, tt.date, got, tt.want)
			}
		})
	}
}

func TestForTime(t *testing.T) {
	if got := ForTime("23:30:00"); got != "2000-01-01 23:30:00" {
		t.Errorf("ForTime() = %q", got)
	}
}

func TestTimeOfDateOf(t *testing.T) {
	tests := []struct {
		slot     Slot
		wantDate string
		wantTime string
	}{
		{"2024-01-01 09:00:00", "2024-01-01", "09:00:00"},
		{"", "", ""},
		{"garbage", "", ""},
		{"2024-01-01T09:00:00", "", ""},
	}
	for _, tt := range tests {
		if got := TimeOf(tt.slot); got != tt.wantTime {
			t.Errorf("TimeOf(%q) = %q, want %q", tt.slot, got, tt.wantTime)
		}
		if got := DateOf(tt.slot); got != tt.wantDate {
			t.Errorf("DateOf(%q) = %q, want %q", tt.slot, got, tt.wantDate)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	dates := []string{"2024-01-01", "2012-01-07", "2000-01-01"}
	for _, d := range dates {
		for m := 0; m < MinutesPerDay; m += IntervalMinutes {
			tm := FromMinutes(m)
			s := Make(tm, d)
			if TimeOf(s) != tm || DateOf(s) != d {
				t.Fatalf("round trip failed for %q: got (%q, %q)", s, DateOf(s), TimeOf(s))
			}
			if Make(TimeOf(s), DateOf(s)) != s {
				t.Fatalf("Make(TimeOf(s), DateOf(s)) != %q", s)
			}
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00:00", 0, true},
		{"09:30:00", 570, true},
		{"23:30:00", 1410, true},
		{"09:30", 570, true},
		{"24:00:00", 0, false},
		{"9:30", 0, false},
		{"09:60:00", 0, false},
		{"ab:cd:ef", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Minutes(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Minutes(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFromMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{570, "09:30:00"},
		{1440, "00:00:00"},
		{-30, "23:30:00"},
	}
	for _, tt := range tests {
		if got := FromMinutes(tt.in); got != tt.want {
			t.Errorf("FromMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	if got := NormalizeTime("09:00"); got != "09:00:00" {
		t.Errorf("NormalizeTime(09:00) = %q", got)
	}
	if got := NormalizeTime("09:00:15"); got != "09:00:15" {
		t.Errorf("NormalizeTime(09:00:15) = %q", got)
	}
	if got := NormalizeTime("nope"); got != "" {
		t.Errorf("NormalizeTime(nope) = %q", got)
	}
}

func TestIsAligned(t *testing.T) {
	if !IsAligned("10:30:00") {
		t.Error("10:30:00 should be aligned")
	}
	if IsAligned("10:15:00") {
		t.Error("10:15:00 should not be aligned")
	}
	if IsAligned("bad") {
		t.Error("invalid time should not be aligned")
	}
}
