package view

import (
	"time"

	"github.com/javiermolinar/overlap/internal/slot"
)

// DateLabel builds a column label. Specific dates read "Mon 03 Feb", while
// day-of-week events only show the weekday.
func DateLabel(date string, specific bool) string {
	t, err := time.Parse(slot.DateLayout, date)
	if err != nil {
		return date
	}
	if !specific {
		return t.Format("Mon")
	}
	return t.Format("Mon 02 Jan")
}

// ShortDateLabel is DateLabel for narrow columns: "03/02".
func ShortDateLabel(date string, specific bool) string {
	t, err := time.Parse(slot.DateLayout, date)
	if err != nil {
		return date
	}
	if !specific {
		return t.Format("Mon")
	}
	return t.Format("02/01")
}

// TimeLabel trims a "HH:mm:ss" slot time to "HH:mm".
func TimeLabel(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
