package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			is_specific_dates INTEGER NOT NULL DEFAULT 1,
			start_time        TEXT NOT NULL,
			end_time          TEXT NOT NULL,
			time_zone         TEXT NOT NULL DEFAULT '',
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS event_dates (
			event_id TEXT NOT NULL REFERENCES events(id),
			date     DATE NOT NULL,
			PRIMARY KEY (event_id, date)
		);

		CREATE TABLE IF NOT EXISTS responses (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id   TEXT NOT NULL REFERENCES events(id),
			alias      TEXT NOT NULL COLLATE NOCASE,
			user_id    TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (event_id, alias)
		);

		CREATE TABLE IF NOT EXISTS availabilities (
			response_id INTEGER NOT NULL REFERENCES responses(id),
			slot        TEXT NOT NULL,
			PRIMARY KEY (response_id, slot)
		);

		CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
		CREATE INDEX IF NOT EXISTS idx_responses_event ON responses(event_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
