// Package dateutil provides date parsing, weekday placeholders and recurrence
// expansion for event dates.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/overlap/internal/slot"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrDateInPast         = errors.New("cannot schedule in the past")
	ErrInvalidWeekday     = errors.New("invalid weekday")
	ErrUnboundedRule      = errors.New("recurrence rule needs a positive limit")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// referenceSunday is the first day of the week whose dates stand in for
// weekdays in day-of-week events.
var referenceSunday = time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Dates returns every date in the range (inclusive) as YYYY-MM-DD strings.
func (r *DateRange) Dates() []string {
	var out []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(slot.DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// IsValidDate reports whether s is a calendar date in YYYY-MM-DD format.
func IsValidDate(s string) bool {
	_, err := time.Parse(slot.DateLayout, s)
	return err == nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(slot.DateLayout)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ConsecutiveDates returns n dates starting at start.
func ConsecutiveDates(start time.Time, n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, FormatDate(start.AddDate(0, 0, i)))
	}
	return out
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//
// All inputs are case-insensitive.
// Returns ErrDateInPast if the resulting date is before relativeTo (truncated to day).
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if weekdayName, ok := strings.CutPrefix(input, "next-"); ok {
		if targetDay, ok := weekdayMap[weekdayName]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation(slot.DateLayout, input, today.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if result.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// WeekdayDate returns the reference date that represents a weekday in
// day-of-week events. Sunday maps to 2012-01-01, Saturday to 2012-01-07.
func WeekdayDate(day time.Weekday) string {
	return FormatDate(referenceSunday.AddDate(0, 0, int(day)))
}

// WeekdayDates converts weekday names ("mon", "Tuesday", ...) to reference dates.
func WeekdayDates(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		day, ok := weekdayMap[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, n)
		}
		out = append(out, WeekdayDate(day))
	}
	return out, nil
}

// WeekdayLabel returns the short weekday name of a date, or "" if it does not parse.
func WeekdayLabel(date string) string {
	t, err := time.Parse(slot.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

// ExpandRule expands an RFC 5545 recurrence rule (for example
// "FREQ=WEEKLY;BYDAY=MO,WE") starting at start into at most limit dates.
// A rule without COUNT or UNTIL is capped at limit occurrences.
func ExpandRule(rule string, start time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, ErrUnboundedRule
	}
	opt, err := rrule.StrToROption(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"))
	if err != nil {
		return nil, fmt.Errorf("parsing recurrence rule: %w", err)
	}
	opt.Dtstart = TruncateToDay(start)
	if opt.Count == 0 && opt.Until.IsZero() {
		opt.Count = limit
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("building recurrence rule: %w", err)
	}

	occurrences := r.All()
	if len(occurrences) > limit {
		occurrences = occurrences[:limit]
	}

	seen := make(map[string]bool, len(occurrences))
	out := make([]string, 0, len(occurrences))
	for _, t := range occurrences {
		d := FormatDate(t)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
