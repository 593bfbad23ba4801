package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/eventfile"
)

func (a *App) createCmd() *cobra.Command {
	var (
		f      eventfile.File
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new event",
		Long: `Create an event people can mark their availability on.

Dates come from exactly one source: a list of dates, weekdays for a
recurring week, a number of consecutive days, or a recurrence rule.
A YAML definition file can be used instead of flags.`,
		Example: `  overlap create --name "Team sync" --dates 2025-02-03,2025-02-04
  overlap create --name "Standup" --weekdays mon,wed,fri --start 09:00 --end 10:00
  overlap create --name "Offsite" --from next-monday --days 5
  overlap create --name "Retro" --rrule "FREQ=WEEKLY;BYDAY=FR" --count 4
  overlap create --file event.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now().In(a.config.Location())

			var (
				req event.CreateRequest
				err error
			)
			if file != "" {
				req, err = eventfile.Load(file, now)
			} else {
				if f.Start == "" {
					f.Start = a.config.Grid.DefaultStart
				}
				if f.End == "" {
					f.End = a.config.Grid.DefaultEnd
				}
				if f.TimeZone == "" {
					f.TimeZone = a.config.Grid.TimeZone
				}
				req, err = f.Request(now)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				return eventfile.Encode(out, resolvedFile(req))
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			e, err := a.repo.CreateEvent(context.Background(), req)
			if err != nil {
				return fmt.Errorf("creating event: %w", err)
			}
			printCreated(out, e)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Name, "name", "n", "", "Event name")
	cmd.Flags().StringVar(&f.Start, "start", "", "Earliest time (HH:MM, default from config)")
	cmd.Flags().StringVar(&f.End, "end", "", "Latest time (HH:MM, 00:00 for midnight, default from config)")
	cmd.Flags().StringVar(&f.TimeZone, "tz", "", "IANA time zone (default from config)")
	cmd.Flags().StringSliceVar(&f.Dates, "dates", nil, "Comma-separated dates (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.Weekdays, "weekdays", nil, "Comma-separated weekdays for a recurring week (mon,tue,...)")
	cmd.Flags().StringVar(&f.From, "from", "", "First date for --days and --rrule (today, tomorrow, monday, next-week, YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.Days, "days", 0, "Number of consecutive days starting at --from")
	cmd.Flags().StringVar(&f.RRule, "rrule", "", "Recurrence rule, e.g. FREQ=WEEKLY;BYDAY=MO,WE")
	cmd.Flags().IntVar(&f.Count, "count", 0, fmt.Sprintf("Maximum dates produced by --rrule (default %d)", eventfile.DefaultRuleCount))
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the event from a YAML file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resolved event as YAML without creating it")

	cmd.MarkFlagsMutuallyExclusive("file", "name")

	return cmd
}

// resolvedFile turns a validated request back into a definition with
// explicit dates.
func resolvedFile(req event.CreateRequest) eventfile.File {
	f := eventfile.File{
		Name:     req.Name,
		Start:    req.StartTime[:5],
		End:      req.EndTime[:5],
		TimeZone: req.TimeZone,
	}
	if req.IsSpecificDates {
		f.Dates = req.Dates
		return f
	}
	for _, d := range req.Dates {
		f.Weekdays = append(f.Weekdays, strings.ToLower(dateutil.WeekdayLabel(d)))
	}
	return f
}

func printCreated(out io.Writer, e *event.Event) {
	fmt.Fprintf(out, "Created event %s\n", formatHeader(e.Name))
	fmt.Fprintf(out, "  id:    %s\n", e.ID)
	fmt.Fprintf(out, "  time:  %s-%s\n", e.StartTime[:5], e.EndTime[:5])
	if e.IsSpecificDates {
		fmt.Fprintf(out, "  dates: %s\n", strings.Join(e.Dates, ", "))
	} else {
		days := make([]string, len(e.Dates))
		for i, d := range e.Dates {
			days[i] = dateutil.WeekdayLabel(d)
		}
		fmt.Fprintf(out, "  days:  %s\n", strings.Join(days, ", "))
	}
	fmt.Fprintf(out, "\nOpen it with: overlap --event %s\n", e.ID)
}
