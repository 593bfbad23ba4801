// Package export renders best-time blocks as an iCalendar feed.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/javiermolinar/overlap/internal/aggregate"
	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/slot"
)

// ErrNoBlocks is returned when there is nothing to export.
var ErrNoBlocks = errors.New("no best times to export")

// ProductID identifies the generator in exported calendars.
const ProductID = "-//overlap//best times//EN"

// Options tunes an export.
type Options struct {
	// Now stamps DTSTAMP. Defaults to time.Now.
	Now time.Time
	// From anchors day-of-week events: each weekday block starts on the first
	// matching day on or after From, repeating weekly.
	From time.Time
	// Available and Total describe the attendance of each block.
	Available int
	Total     int
}

// BestTimes builds a calendar with one VEVENT per block.
func BestTimes(e event.Event, blocks []aggregate.Block, opts Options) (*ics.Calendar, error) {
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	loc := time.UTC
	if e.TimeZone != "" {
		l, err := time.LoadLocation(e.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", event.ErrInvalidTimeZone, e.TimeZone)
		}
		loc = l
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.From.IsZero() {
		opts.From = opts.Now
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(e.Name)

	for i, b := range blocks {
		start, end, err := blockTimes(b, loc)
		if err != nil {
			return nil, err
		}
		if !e.IsSpecificDates {
			from := opts.From.In(loc)
			anchor := dateutil.TruncateToDay(from).AddDate(0, 0, daysUntil(from, start.Weekday()))
			days := daysBetween(start, anchor)
			start, end = start.AddDate(0, 0, days), end.AddDate(0, 0, days)
		}

		ve := cal.AddEvent(fmt.Sprintf("%s-%d@overlap", e.ID, i))
		ve.SetDtStampTime(opts.Now)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(e.Name)
		if opts.Total > 0 {
			ve.SetDescription(fmt.Sprintf("%d of %d participants available", opts.Available, opts.Total))
		}
		if !e.IsSpecificDates {
			ve.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
		}
	}
	return cal, nil
}

// Write serializes the calendar for the best times of e to w.
func Write(w io.Writer, e event.Event, blocks []aggregate.Block, opts Options) error {
	cal, err := BestTimes(e, blocks, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// blockTimes resolves a block's wall-clock bounds in loc. An end of midnight
// belongs to the following day.
func blockTimes(b aggregate.Block, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(slot.DateLayout, b.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("block date %q: %w", b.Date, err)
	}
	startMin, ok := slot.Minutes(b.Start)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("block start %q: %w", b.Start, event.ErrInvalidTimeFormat)
	}
	endMin, ok := slot.Minutes(b.End)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("block end %q: %w", b.End, event.ErrInvalidTimeFormat)
	}
	if endMin <= startMin {
		endMin += slot.MinutesPerDay
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, startMin, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), 0, endMin, 0, 0, loc)
	return start, end, nil
}

// daysBetween counts calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func daysUntil(from time.Time, target time.Weekday) int {
	return (int(target) - int(from.Weekday()) + 7) % 7
}
