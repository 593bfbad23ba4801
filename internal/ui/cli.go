package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/config"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    event.Repository
	ownRepo bool // repo was opened here and must be closed
	config  *config.Config
	root    *cobra.Command
	debug   bool   // Enable debug logging
	eventID string // Event the TUI opens on start
	now     func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{repo: repo, config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "overlap",
		Short: "Find the time that works for everyone",
		Long: `Overlap collects everyone's availability on a shared grid of dates and
times and shows where it overlaps, so you can pick the meeting time that
works for the most people.

Run without a subcommand to open the interactive grid.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			var opts []tui.ModelOption
			if a.eventID != "" {
				opts = append(opts, tui.WithEvent(a.eventID))
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug, opts...)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")
	a.root.Flags().StringVarP(&a.eventID, "event", "e", "", "Open this event on start")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.createCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.respondCmd())
	a.root.AddCommand(a.bestCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "overlap %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteArgs runs the CLI with explicit arguments, writing output to the
// command's configured writers.
func (a *App) ExecuteArgs(args ...string) error {
	a.root.SetArgs(args)
	return a.root.Execute()
}

// Root exposes the root command, mainly for tests.
func (a *App) Root() *cobra.Command {
	return a.root
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.ownRepo && a.repo != nil {
		err := a.repo.Close()
		a.repo = nil
		a.ownRepo = false
		return err
	}
	return nil
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := tui.OpenRepo(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	a.ownRepo = true
	return nil
}

// loadSession fetches an event and loads it into a fresh grid session.
func (a *App) loadSession(ctx context.Context, id string, windowSize int) (*grid.Session, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	data, err := a.repo.GetEventData(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading event %s: %w", id, err)
	}
	s := grid.NewSession(grid.Options{
		WindowSize: windowSize,
		Dim:        a.config.Grid.BestTimesDim,
	})
	s.Load(data)
	return s, nil
}

// resolveFilter maps names to participant aliases, ignoring case. Unknown
// names are returned separately.
func resolveFilter(names, participants []string) (aliases, unknown []string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		found := false
		for _, p := range participants {
			if strings.EqualFold(n, p) {
				aliases = append(aliases, p)
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, n)
		}
	}
	return aliases, unknown
}
