// Package slot encodes (date, time) pairs into the canonical slot keys used by
// the availability grid.
package slot

import (
	"fmt"
	"strings"
)

// Layouts used by every slot key.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
	Layout     = DateLayout + Separator + TimeLayout
)

const (
	// Separator joins the date and time parts of a slot key.
	Separator = " "
	// PlaceholderDate stands in for the date when only the time matters.
	PlaceholderDate = "2000-01-01"
	// IntervalMinutes is the width of one grid row.
	IntervalMinutes = 30
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
)

// Slot is a canonical "yyyy-MM-dd HH:mm:ss" key identifying one grid cell.
type Slot string

// Make joins a time and a date into a slot.
// An empty date is replaced by PlaceholderDate.
func Make(time, date string) Slot {
	if date == "" {
		date = PlaceholderDate
	}
	return Slot(date + Separator + time)
}

// ForTime returns the slot for a time of day on the placeholder date.
func ForTime(time string) Slot {
	return Make(time, "")
}

// Parse splits a slot into its date and time parts.
// ok is false when the separator is missing.
func Parse(s Slot) (date, time string, ok bool) {
	return strings.Cut(string(s), Separator)
}

// TimeOf returns the time part of s, or "" when s is empty or malformed.
func TimeOf(s Slot) string {
	_, t, ok := Parse(s)
	if !ok {
		return ""
	}
	return t
}

// DateOf returns the date part of s, or "" when s is empty or malformed.
func DateOf(s Slot) string {
	d, _, ok := Parse(s)
	if !ok {
		return ""
	}
	return d
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	return string(s)
}

// Minutes converts "HH:mm:ss" (or "HH:mm") to minutes since midnight.
// Returns false for anything that is not a valid time of day.
func Minutes(t string) (int, bool) {
	if len(t) != 8 && len(t) != 5 {
		return 0, false
	}
	if t[2] != ':' || (len(t) == 8 && t[5] != ':') {
		return 0, false
	}
	hours, ok := twoDigits(t[0:2])
	if !ok || hours > 23 {
		return 0, false
	}
	mins, ok := twoDigits(t[3:5])
	if !ok || mins > 59 {
		return 0, false
	}
	if len(t) == 8 {
		secs, ok := twoDigits(t[6:8])
		if !ok || secs > 59 {
			return 0, false
		}
	}
	return hours*60 + mins, true
}

// FromMinutes converts minutes since midnight to "HH:mm:ss".
// Values wrap around at midnight.
func FromMinutes(m int) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// NormalizeTime accepts "HH:mm" or "HH:mm:ss" and returns "HH:mm:ss".
// Returns "" for invalid input.
func NormalizeTime(t string) string {
	m, ok := Minutes(t)
	if !ok {
		return ""
	}
	if len(t) == 8 {
		return t
	}
	return FromMinutes(m)
}

// IsAligned reports whether t falls on an interval boundary.
func IsAligned(t string) bool {
	m, ok := Minutes(t)
	return ok && m%IntervalMinutes == 0
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
