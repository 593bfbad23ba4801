package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/aggregate"
	"github.com/javiermolinar/overlap/internal/export"
)

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

func (a *App) bestCmd() *cobra.Command {
	var (
		filter  []string
		copyOut bool
		icsPath string
	)

	cmd := &cobra.Command{
		Use:   "best EVENT_ID",
		Short: "List the times that suit the most people",
		Long: `List the time blocks where the most participants are available.

Use --copy to put the list on the clipboard, or --ics to save the blocks
as calendar entries.`,
		Example: `  overlap best 0b5c...
  overlap best 0b5c... --filter alice,bob --copy
  overlap best 0b5c... --ics best.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(context.Background(), args[0], a.config.Grid.ViewWindowSize)
			if err != nil {
				return err
			}
			if len(filter) > 0 {
				aliases, _ := resolveFilter(filter, s.Participants())
				s.SetFilter(aliases)
			}

			e := s.Event()
			blocks := s.BestBlocks()
			available := s.Summary().Max
			total := s.Cell(0, 0).Total

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatHeader(e.Name))
			PrintBlocks(out, blocks, e.IsSpecificDates, available, total)
			if len(blocks) == 0 {
				return nil
			}

			if copyOut {
				if err := clipboardWrite(aggregate.FormatBlocks(blocks, e.IsSpecificDates)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard."))
			}

			if icsPath != "" {
				if err := writeICS(icsPath, func(f *os.File) error {
					return export.Write(f, e, blocks, export.Options{
						Now:       a.now(),
						Available: available,
						Total:     total,
					})
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", formatMuted("Wrote "+icsPath))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&filter, "filter", nil, "Only count these participants (comma-separated)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the best times to the clipboard")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Write the best times to an iCalendar file")
	return cmd
}

// writeICS creates path and hands it to write, removing the file on failure.
func writeICS(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing calendar file: %w", err)
	}
	return nil
}
