package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// terminalWidth is swapped in tests.
var terminalWidth = termWidth

func (a *App) showCmd() *cobra.Command {
	var (
		best    bool
		filter  []string
		page    int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "show EVENT_ID",
		Short: "Print an event's availability heatmap",
		Long: `Display the availability grid of an event as a colored table.

Each cell shows how many participants are available. As many dates as fit
the terminal are shown; use --page to see the rest.`,
		Example: `  overlap show 0b5c...
  overlap show 0b5c... --best
  overlap show 0b5c... --filter alice,bob --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}

			size := windowForWidth(terminalWidth(), a.config.Grid.ViewWindowSize)
			s, err := a.loadSession(context.Background(), args[0], size)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(filter) > 0 {
				aliases, unknown := resolveFilter(filter, s.Participants())
				for _, n := range unknown {
					fmt.Fprintln(cmd.ErrOrStderr(), formatMuted(fmt.Sprintf("ignoring unknown participant %q", n)))
				}
				s.SetFilter(aliases)
			}
			if best {
				s.ToggleBestTimes()
			}
			if page > 0 {
				s.SetLeftMost((page - 1) * s.Window().Size())
			}

			PrintHeatmap(out, s)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&best, "best", "b", false, "Highlight the best times")
	cmd.Flags().StringSliceVar(&filter, "filter", nil, "Only count these participants (comma-separated)")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "Page of dates to show (1-based)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
