package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/overlap/internal/config"
	"github.com/javiermolinar/overlap/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  overlap config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.UI.Name = promptValue(reader, out, "Your name (empty to ask each time)", cfg.UI.Name)
	cfg.Grid.DefaultStart = promptValue(reader, out, "Default start", cfg.Grid.DefaultStart)
	cfg.Grid.DefaultEnd = promptValue(reader, out, "Default end", cfg.Grid.DefaultEnd)
	cfg.Grid.TimeZone = promptValue(reader, out, "Time zone (empty for local)", cfg.Grid.TimeZone)
	cfg.Grid.ViewWindowSize = promptInt(reader, out, "Dates shown at once", cfg.Grid.ViewWindowSize)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[grid]")
	fmt.Fprintf(out, "  view_window_size = %d\n", cfg.Grid.ViewWindowSize)
	fmt.Fprintf(out, "  best_times_dim   = %v\n", cfg.Grid.BestTimesDim)
	fmt.Fprintf(out, "  default_start    = %s\n", cfg.Grid.DefaultStart)
	fmt.Fprintf(out, "  default_end      = %s\n", cfg.Grid.DefaultEnd)
	if cfg.Grid.TimeZone != "" {
		fmt.Fprintf(out, "  time_zone        = %s\n", cfg.Grid.TimeZone)
	}
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  name             = %s\n", cfg.UI.Name)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
