package ui

import (
	"context"
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List all events, newest first.

Example:
  overlap list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			events, err := a.repo.ListEvents(context.Background())
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events yet. Create one with 'overlap create'.")
				return nil
			}

			now := a.now()
			for _, e := range events {
				fmt.Fprintf(out, "%s  %s\n", formatHeader(e.Name), formatMuted(e.ID))
				fmt.Fprintf(out, "    %s, %s-%s, created %s\n",
					describeDates(e),
					e.StartTime[:5],
					e.EndTime[:5],
					humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
				)
			}
			return nil
		},
	}
}

// describeDates summarizes an event's date axis in a few words.
func describeDates(e *event.Event) string {
	if !e.IsSpecificDates {
		days := make([]string, len(e.Dates))
		for i, d := range e.Dates {
			days[i] = dateutil.WeekdayLabel(d)
		}
		return "every " + strings.Join(days, "/")
	}
	switch n := len(e.Dates); n {
	case 0:
		return "no dates"
	case 1:
		return e.Dates[0]
	default:
		return fmt.Sprintf("%d dates, %s to %s", n, e.Dates[0], e.Dates[n-1])
	}
}
