package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/dateutil"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/slot"
)

// Cell range errors.
var (
	ErrBadCell     = errors.New("cell must look like DATE@HH:MM")
	ErrCellOutside = errors.New("cell is outside the event grid")
)

// cellRange is a rectangle of cells in absolute grid coordinates.
type cellRange struct {
	fromRow, fromCol int
	toRow, toCol     int
}

func (a *App) respondCmd() *cobra.Command {
	var (
		name   string
		cells  []string
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "respond EVENT_ID",
		Short: "Mark your availability on an event",
		Long: `Mark availability by dragging rectangles across the grid, as the
interactive view does. Each --cells range is a rectangle from one cell to
another, both included. Starting a range on a slot you already marked
removes the rectangle instead of adding it.

Cells are DATE@HH:MM. DATE is YYYY-MM-DD, or a weekday name for events
that repeat weekly.`,
		Example: `  overlap respond 0b5c... --name alice --cells 2025-02-03@09:00..2025-02-04@11:30
  overlap respond 0b5c... --name bob --cells mon@09:00..fri@10:00
  overlap respond 0b5c... --name bob --delete`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = a.config.UI.Name
			}
			if strings.TrimSpace(name) == "" {
				return grid.ErrEmptyName
			}

			ctx := context.Background()
			out := cmd.OutOrStdout()

			s, err := a.loadSession(ctx, args[0], a.config.Grid.ViewWindowSize)
			if err != nil {
				return err
			}

			if remove {
				aliases, _ := resolveFilter([]string{name}, s.Participants())
				if len(aliases) == 0 {
					return fmt.Errorf("%s: %w", name, grid.ErrUnknownParticipant)
				}
				if err := a.repo.DeleteResponse(ctx, args[0], aliases[0]); err != nil {
					return fmt.Errorf("deleting response: %w", err)
				}
				fmt.Fprintf(out, "Removed %s from the event\n", formatName(aliases[0]))
				return nil
			}
			if len(cells) == 0 {
				return errors.New("nothing to mark, pass at least one --cells range")
			}

			req, err := a.respond(ctx, s, name, cells)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Saved %d slots for %s\n", len(req.Availabilities), formatName(req.Alias))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Your name (default from config)")
	cmd.Flags().StringArrayVarP(&cells, "cells", "c", nil, "Cell range FROM..TO, repeatable")
	cmd.Flags().BoolVar(&remove, "delete", false, "Remove this participant's response")
	cmd.MarkFlagsMutuallyExclusive("cells", "delete")

	return cmd
}

// respond edits name's response with one drag per range, then saves it.
// A failed save rolls the session back.
func (a *App) respond(ctx context.Context, s *grid.Session, name string, ranges []string) (event.SaveRequest, error) {
	rects := make([]cellRange, 0, len(ranges))
	for _, r := range ranges {
		rect, err := parseCellRange(r, s.Axis(), s.Event().IsSpecificDates)
		if err != nil {
			return event.SaveRequest{}, fmt.Errorf("%q: %w", r, err)
		}
		rects = append(rects, rect)
	}

	err := s.BeginEditExisting(name)
	if errors.Is(err, grid.ErrUnknownParticipant) {
		err = s.BeginEditNew(name)
	}
	if err != nil {
		return event.SaveRequest{}, err
	}

	for _, r := range rects {
		s.DragStart(r.fromRow, r.fromCol)
		s.DragMove(r.toRow, r.toCol)
		s.DragEnd()
	}

	req, err := s.Save()
	if err != nil {
		return event.SaveRequest{}, err
	}
	if err := a.repo.SaveResponse(ctx, req); err != nil {
		if rbErr := s.Rollback(); rbErr != nil {
			return req, errors.Join(fmt.Errorf("saving response: %w", err), rbErr)
		}
		return req, fmt.Errorf("saving response: %w", err)
	}
	s.ConfirmSave()
	return req, nil
}

// parseCellRange parses "FROM..TO" or a single cell.
func parseCellRange(s string, axis event.Axis, specificDates bool) (cellRange, error) {
	from, to, found := strings.Cut(s, "..")
	if !found {
		to = from
	}
	fromRow, fromCol, err := parseCell(from, axis, specificDates)
	if err != nil {
		return cellRange{}, err
	}
	toRow, toCol, err := parseCell(to, axis, specificDates)
	if err != nil {
		return cellRange{}, err
	}
	return cellRange{fromRow: fromRow, fromCol: fromCol, toRow: toRow, toCol: toCol}, nil
}

// parseCell resolves "DATE@HH:MM" to a row and column.
func parseCell(s string, axis event.Axis, specificDates bool) (row, col int, err error) {
	date, t, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		return 0, 0, ErrBadCell
	}

	t = slot.NormalizeTime(t)
	if t == "" {
		return 0, 0, ErrBadCell
	}

	date = strings.TrimSpace(date)
	if !specificDates && !dateutil.IsValidDate(date) {
		dates, err := dateutil.WeekdayDates([]string{date})
		if err != nil {
			return 0, 0, err
		}
		date = dates[0]
	}

	row = slices.Index(axis.Times, t)
	col = slices.Index(axis.Dates, date)
	if row < 0 || col < 0 {
		return 0, 0, ErrCellOutside
	}
	return row, col, nil
}
