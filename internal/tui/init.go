package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/overlap/internal/config"
	"github.com/javiermolinar/overlap/internal/db"
	"github.com/javiermolinar/overlap/internal/event"
)

// InitState tracks whether startup initialization is required.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState checks for missing config or database files.
func DetectInitState(cfg *config.Config) (InitState, error) {
	state := InitState{
		ConfigPath: config.DefaultConfigPath(),
		DBPath:     cfg.Storage.DBPath,
	}

	configMissing, err := pathMissing(state.ConfigPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	dbMissing, err := pathMissing(state.DBPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}

	state.ConfigMissing = configMissing
	state.DBMissing = dbMissing
	state.NeedsInit = configMissing || dbMissing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

// OpenRepo opens the SQLite repository at dbPath, creating its directory.
func OpenRepo(dbPath string) (event.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// initializeStorage writes a default config and opens the database when
// either was missing at startup.
func initializeStorage(cfg *config.Config, state InitState) (event.Repository, error) {
	if state.ConfigMissing {
		if err := cfg.SaveTo(state.ConfigPath); err != nil {
			return nil, fmt.Errorf("saving config: %w", err)
		}
	}
	return OpenRepo(state.DBPath)
}
