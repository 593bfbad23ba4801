// Package eventfile reads event definitions from YAML files.
//
// A file describes exactly one date source:
//
//	name: Team sync
//	start: "09:00"
//	end: "17:00"
//	time_zone: Europe/Madrid
//	dates: [2025-01-10, 2025-01-13]      # specific dates
//	weekdays: [mon, wed]                  # or a day-of-week event
//	from: tomorrow                        # or consecutive days from a date
//	days: 5
//	rrule: "FREQ=WEEKLY;BYDAY=MO,TH"      # or a recurrence rule from `from`
//	count: 6
package eventfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
)

// Errors returned while resolving a file.
var (
	ErrNoDateSource       = errors.New("event file needs one of dates, weekdays, days or rrule")
	ErrMultipleDateSource = errors.New("event file must use only one of dates, weekdays, days or rrule")
)

// DefaultRuleCount caps rules that have neither count nor an UNTIL part.
const DefaultRuleCount = 10

// File is the YAML shape of an event definition.
type File struct {
	Name     string   `yaml:"name"`
	Start    string   `yaml:"start"`
	End      string   `yaml:"end"`
	TimeZone string   `yaml:"time_zone,omitempty"`
	Dates    []string `yaml:"dates,omitempty"`
	Weekdays []string `yaml:"weekdays,omitempty"`
	From     string   `yaml:"from,omitempty"`
	Days     int      `yaml:"days,omitempty"`
	RRule    string   `yaml:"rrule,omitempty"`
	Count    int      `yaml:"count,omitempty"`
}

// Load reads and resolves the file at path.
func Load(path string, now time.Time) (event.CreateRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return event.CreateRequest{}, fmt.Errorf("opening event file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, now)
}

// Parse decodes a YAML definition and resolves it into a validated request.
// Relative dates are resolved against now.
func Parse(r io.Reader, now time.Time) (event.CreateRequest, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return event.CreateRequest{}, fmt.Errorf("parsing event file: %w", err)
	}
	return file.Request(now)
}

// Request resolves the file's date source into a CreateRequest and validates it.
func (f File) Request(now time.Time) (event.CreateRequest, error) {
	req := event.CreateRequest{
		Name:            f.Name,
		StartTime:       f.Start,
		EndTime:         f.End,
		TimeZone:        f.TimeZone,
		IsSpecificDates: true,
	}

	sources := 0
	for _, set := range []bool{len(f.Dates) > 0, len(f.Weekdays) > 0, f.Days > 0, f.RRule != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return req, ErrNoDateSource
	case sources > 1:
		return req, ErrMultipleDateSource
	}

	var err error
	switch {
	case len(f.Dates) > 0:
		req.Dates = trimAll(f.Dates)
	case len(f.Weekdays) > 0:
		req.IsSpecificDates = false
		req.Dates, err = dateutil.WeekdayDates(f.Weekdays)
	case f.Days > 0:
		var from time.Time
		if from, err = dateutil.ParseRelativeDate(f.From, now); err == nil {
			req.Dates = dateutil.ConsecutiveDates(from, f.Days)
		}
	default:
		var from time.Time
		if from, err = dateutil.ParseRelativeDate(f.From, now); err == nil {
			count := f.Count
			if count <= 0 {
				count = DefaultRuleCount
			}
			req.Dates, err = dateutil.ExpandRule(f.RRule, from, count)
		}
	}
	if err != nil {
		return req, err
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding event file: %w", err)
	}
	return enc.Close()
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
