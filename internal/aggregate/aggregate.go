// Package aggregate counts participants per slot and computes the best times.
package aggregate

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/slot"
)

// DefaultDim is the intensity of non-best slots in best-times mode.
const DefaultDim = 0.2

// Counter answers per-slot participant counts restricted to a filter.
type Counter struct {
	index    event.SlotIndex
	filter   map[string]struct{}
	filtered int
}

// NewCounter builds a Counter. An empty filter means everyone; filter entries
// that are not participants are ignored, and a filter left with none counts
// everyone.
func NewCounter(index event.SlotIndex, participants, filter []string) Counter {
	known := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		known[p] = struct{}{}
	}

	c := Counter{index: index}
	if len(filter) == 0 {
		c.filtered = len(participants)
		return c
	}

	c.filter = make(map[string]struct{}, len(filter))
	for _, f := range filter {
		if _, ok := known[f]; ok {
			c.filter[f] = struct{}{}
		}
	}
	if len(c.filter) == 0 {
		c.filter = nil
		c.filtered = len(participants)
		return c
	}
	c.filtered = len(c.filter)
	return c
}

func (c Counter) includes(alias string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[alias]
	return ok
}

// SelectedCount returns how many filtered participants are available at s.
func (c Counter) SelectedCount(s slot.Slot) int {
	n := 0
	for _, alias := range c.index[s] {
		if c.includes(alias) {
			n++
		}
	}
	return n
}

// Participants returns the filtered participants available at s.
func (c Counter) Participants(s slot.Slot) []string {
	out := []string{}
	for _, alias := range c.index[s] {
		if c.includes(alias) {
			out = append(out, alias)
		}
	}
	return out
}

// TotalFiltered returns the number of participants the counter considers.
func (c Counter) TotalFiltered() int {
	return c.filtered
}

// Summary holds the grid-wide best-times figures.
type Summary struct {
	Max             int
	FirstBestColumn int
	// BestSlots lists every slot at Max, ordered by date then time.
	BestSlots []slot.Slot
}

// Summarize scans every cell of the dates × times grid.
// Dates are expected in display order.
func Summarize(c Counter, dates, times []string) Summary {
	sum := Summary{FirstBestColumn: -1}
	for _, d := range dates {
		for _, t := range times {
			if n := c.SelectedCount(slot.Make(t, d)); n > sum.Max {
				sum.Max = n
			}
		}
	}
	if sum.Max == 0 {
		return sum
	}
	for col, d := range dates {
		for _, t := range times {
			s := slot.Make(t, d)
			if c.SelectedCount(s) != sum.Max {
				continue
			}
			if sum.FirstBestColumn < 0 {
				sum.FirstBestColumn = col
			}
			sum.BestSlots = append(sum.BestSlots, s)
		}
	}
	return sum
}

// Policy selects how counts turn into intensities.
type Policy struct {
	BestTimes bool
	Dim       float64
}

// Intensity maps a slot count to a value in [0, 1].
func Intensity(count int, sum Summary, total int, p Policy) float64 {
	if p.BestTimes {
		switch {
		case sum.Max == 0:
			return 0
		case count == sum.Max:
			return 1
		default:
			return p.Dim
		}
	}
	if total <= 0 || count <= 0 {
		return 0
	}
	return min(float64(count)/float64(total), 1)
}

// Shade interpolates between the neutral and the selected color.
// It returns "" for zero intensity, meaning the cell is left unpainted.
func Shade(neutralHex, selectedHex string, intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	from, err := colorful.Hex(neutralHex)
	if err != nil {
		return selectedHex
	}
	to, err := colorful.Hex(selectedHex)
	if err != nil {
		return selectedHex
	}
	return from.BlendRgb(to, min(intensity, 1)).Clamped().Hex()
}

// Block is a run of consecutive slots on one date, End exclusive.
type Block struct {
	Date  string
	Start string
	End   string
}

// Blocks merges slots into blocks. Slots must be ordered by date then time,
// as Summary.BestSlots is.
func Blocks(slots []slot.Slot) []Block {
	var blocks []Block
	lastEnd := -1
	for _, s := range slots {
		date, t, ok := slot.Parse(s)
		if !ok {
			continue
		}
		m, ok := slot.Minutes(t)
		if !ok {
			continue
		}
		end := m + slot.IntervalMinutes
		if n := len(blocks); n > 0 && blocks[n-1].Date == date && lastEnd == m {
			blocks[n-1].End = slot.FromMinutes(end)
			lastEnd = end
			continue
		}
		blocks = append(blocks, Block{Date: date, Start: t, End: slot.FromMinutes(end)})
		lastEnd = end
	}
	return blocks
}

// Label renders the block for humans, for example "Mon 2025-02-03 12:00-13:30".
// Day-of-week events drop the reference date.
func (b Block) Label(specificDates bool) string {
	span := shortTime(b.Start) + "-" + shortTime(b.End)
	day := dateutil.WeekdayLabel(b.Date)
	if !specificDates {
		return day + " " + span
	}
	return day + " " + b.Date + " " + span
}

// FormatBlocks renders one block label per line.
func FormatBlocks(blocks []Block, specificDates bool) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.Label(specificDates)
	}
	return strings.Join(lines, "\n")
}

func shortTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
