// Package event defines the event data model: the time and date axes, the
// participant list and the slot participant index derived from responses.
package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/slot"
)

// Validation errors.
var (
	ErrEmptyName         = errors.New("event name cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM:SS format")
	ErrUnalignedTime     = errors.New("time must fall on a 30 minute boundary")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrNoDates           = errors.New("event needs at least one date")
	ErrInvalidTimeZone   = errors.New("unknown time zone")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrEmptyAlias    = errors.New("alias cannot be empty")
)

// Event is the configuration of one scheduling event.
type Event struct {
	ID              string
	Name            string
	IsSpecificDates bool
	StartTime       string   // "HH:mm:ss"
	EndTime         string   // "HH:mm:ss", "00:00:00" means midnight at the end of the day
	Dates           []string // "yyyy-MM-dd"; weekday reference dates when !IsSpecificDates
	TimeZone        string
	CreatedAt       time.Time
}

// Response holds one participant's full availability.
type Response struct {
	Alias          string
	UserID         string
	Availabilities []slot.Slot
}

// Data is the payload supplied by the storage layer on load.
type Data struct {
	Event     Event
	Responses []Response
}

// Upsert returns a copy of d with r inserted, or replacing the response whose
// alias matches case-insensitively.
func (d *Data) Upsert(r Response) *Data {
	out := d.Clone()
	for i, existing := range out.Responses {
		if strings.EqualFold(existing.Alias, r.Alias) {
			out.Responses[i] = r
			return out
		}
	}
	out.Responses = append(out.Responses, r)
	return out
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{Event: d.Event}
	out.Event.Dates = slices.Clone(d.Event.Dates)
	out.Responses = make([]Response, len(d.Responses))
	for i, r := range d.Responses {
		r.Availabilities = slices.Clone(r.Availabilities)
		out.Responses[i] = r
	}
	return out
}

// CreateRequest is emitted to create a new event.
type CreateRequest struct {
	Name            string
	StartTime       string
	EndTime         string
	IsSpecificDates bool
	Dates           []string
	TimeZone        string
}

// Validate checks the request fields and normalizes times to HH:mm:ss.
func (r *CreateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrEmptyName
	}

	start, err := validateTime(r.StartTime)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	end, err := validateTime(r.EndTime)
	if err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if end != "00:00:00" && end <= start {
		return ErrEndBeforeStart
	}
	r.StartTime, r.EndTime = start, end

	if len(r.Dates) == 0 {
		return ErrNoDates
	}
	for _, d := range r.Dates {
		if !dateutil.IsValidDate(d) {
			return fmt.Errorf("%w: %q", dateutil.ErrInvalidDateFormat, d)
		}
	}

	if r.TimeZone != "" {
		if _, err := time.LoadLocation(r.TimeZone); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeZone, r.TimeZone)
		}
	}
	return nil
}

func validateTime(t string) (string, error) {
	norm := slot.NormalizeTime(t)
	if norm == "" {
		return "", ErrInvalidTimeFormat
	}
	if !slot.IsAligned(norm) {
		return "", ErrUnalignedTime
	}
	return norm, nil
}

// SaveRequest is emitted when the active user saves their availability.
type SaveRequest struct {
	EventID        string
	Alias          string
	UserID         string
	Availabilities []slot.Slot
}

// Response converts the request into the response it creates or replaces.
func (r SaveRequest) Response() Response {
	return Response{
		Alias:          r.Alias,
		UserID:         r.UserID,
		Availabilities: slices.Clone(r.Availabilities),
	}
}

// SortedTimes returns the time axis from start to end in 30 minute steps.
// The first step at or after end is included. An end of "00:00:00" means
// midnight of the following day; steps never wrap past midnight, so the
// wrapped 00:00 row is left out and the last row is 23:30.
func SortedTimes(start, end string) []string {
	s, ok := slot.Minutes(start)
	if !ok {
		return nil
	}
	e, ok := slot.Minutes(end)
	if !ok {
		return nil
	}
	if e == 0 {
		e = slot.MinutesPerDay
	}

	var out []string
	for m := s; m < slot.MinutesPerDay; m += slot.IntervalMinutes {
		out = append(out, slot.FromMinutes(m))
		if m >= e {
			break
		}
	}
	return out
}

// SortedDates returns a copy of dates sorted by calendar date.
// Duplicates are kept.
func SortedDates(dates []string) []string {
	out := slices.Clone(dates)
	slices.SortStableFunc(out, func(a, b string) int {
		ta, errA := time.Parse(slot.DateLayout, a)
		tb, errB := time.Parse(slot.DateLayout, b)
		if errA != nil || errB != nil {
			return strings.Compare(a, b)
		}
		return ta.Compare(tb)
	})
	return out
}

// SortParticipants returns aliases sorted case-insensitively using
// locale-aware collation.
func SortParticipants(aliases []string) []string {
	out := slices.Clone(aliases)
	c := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b string) int {
		return c.CompareString(a, b)
	})
	return out
}
