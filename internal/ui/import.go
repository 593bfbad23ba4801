package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/db"
	"github.com/javiermolinar/overlap/internal/event"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import events from another database",
		Long: `Import all events and their responses from another overlap database
into the current one. Imported events get new IDs.

Example:
  overlap import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			events, responses, err := importEvents(context.Background(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events with %d responses from %s\n", events, responses, sourcePath)
			return nil
		},
	}

	return cmd
}

// importEvents copies every event of the database at sourcePath into dest,
// oldest first, along with its responses.
func importEvents(ctx context.Context, dest event.Repository, sourcePath string) (events, responses int, err error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	list, err := sourceRepo.ListEvents(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("listing source events: %w", err)
	}

	for i := len(list) - 1; i >= 0; i-- {
		data, err := sourceRepo.GetEventData(ctx, list[i].ID)
		if err != nil {
			return events, responses, fmt.Errorf("reading event %q: %w", list[i].Name, err)
		}

		src := data.Event
		created, err := dest.CreateEvent(ctx, event.CreateRequest{
			Name:            src.Name,
			StartTime:       src.StartTime,
			EndTime:         src.EndTime,
			IsSpecificDates: src.IsSpecificDates,
			Dates:           src.Dates,
			TimeZone:        src.TimeZone,
		})
		if err != nil {
			return events, responses, fmt.Errorf("importing event %q: %w", src.Name, err)
		}
		events++

		for _, r := range data.Responses {
			err := dest.SaveResponse(ctx, event.SaveRequest{
				EventID:        created.ID,
				Alias:          r.Alias,
				UserID:         r.UserID,
				Availabilities: r.Availabilities,
			})
			if err != nil {
				return events, responses, fmt.Errorf("importing response of %q: %w", r.Alias, err)
			}
			responses++
		}
	}

	return events, responses, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
