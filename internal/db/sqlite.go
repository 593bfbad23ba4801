// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/slot"
)

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ event.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateEvent validates req and stores a new event with a random ID.
func (s *SQLite) CreateEvent(ctx context.Context, req event.CreateRequest) (*event.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &event.Event{
		ID:              uuid.NewString(),
		Name:            req.Name,
		IsSpecificDates: req.IsSpecificDates,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Dates:           event.SortedDates(dedupe(req.Dates)),
		TimeZone:        req.TimeZone,
		CreatedAt:       s.now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, name, is_specific_dates, start_time, end_time, time_zone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Name,
		e.IsSpecificDates,
		e.StartTime,
		e.EndTime,
		e.TimeZone,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO event_dates (event_id, date) VALUES (?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, d := range e.Dates {
		if _, err := stmt.ExecContext(ctx, e.ID, d); err != nil {
			return nil, fmt.Errorf("inserting date %s: %w", d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return e, nil
}

// GetEventData returns the event and its responses in the order they were
// first saved.
func (s *SQLite) GetEventData(ctx context.Context, id string) (*event.Data, error) {
	e, err := getEvent(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.alias, r.user_id, a.slot
		FROM responses r
		LEFT JOIN availabilities a ON a.response_id = r.id
		WHERE r.event_id = ?
		ORDER BY r.id, a.slot
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	data := &event.Data{Event: *e, Responses: []event.Response{}}
	lastID := int64(-1)
	for rows.Next() {
		var (
			responseID int64
			alias      string
			userID     string
			sl         sql.NullString
		)
		if err := rows.Scan(&responseID, &alias, &userID, &sl); err != nil {
			return nil, fmt.Errorf("scanning response: %w", err)
		}
		if responseID != lastID {
			data.Responses = append(data.Responses, event.Response{
				Alias:          alias,
				UserID:         userID,
				Availabilities: []slot.Slot{},
			})
			lastID = responseID
		}
		if sl.Valid {
			r := &data.Responses[len(data.Responses)-1]
			r.Availabilities = append(r.Availabilities, slot.Slot(sl.String))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating responses: %w", err)
	}

	return data, nil
}

// ListEvents returns all events, newest first.
func (s *SQLite) ListEvents(ctx context.Context) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, is_specific_dates, start_time, end_time, time_zone, created_at
		FROM events
		ORDER BY created_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	_ = rows.Close()

	for _, e := range events {
		if e.Dates, err = loadDates(ctx, s.db, e.ID); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// SaveResponse creates or replaces the response for req.Alias. A new response
// without a user ID gets a random one; a replaced response keeps its ID unless
// req carries a new one.
func (s *SQLite) SaveResponse(ctx context.Context, req event.SaveRequest) error {
	alias := strings.TrimSpace(req.Alias)
	if alias == "" {
		return event.ErrEmptyAlias
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := eventExists(ctx, tx, req.EventID); err != nil {
		return err
	}

	var (
		responseID int64
		userID     string
	)
	updatedAt := s.now().UTC().Format(time.RFC3339)
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id FROM responses WHERE event_id = ? AND alias = ?`,
		req.EventID, alias,
	).Scan(&responseID, &userID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		userID = req.UserID
		if userID == "" {
			userID = uuid.NewString()
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO responses (event_id, alias, user_id, updated_at) VALUES (?, ?, ?, ?)`,
			req.EventID, alias, userID, updatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting response: %w", err)
		}
		if responseID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
	case err != nil:
		return fmt.Errorf("querying response: %w", err)
	default:
		if req.UserID != "" {
			userID = req.UserID
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE responses SET alias = ?, user_id = ?, updated_at = ? WHERE id = ?`,
			alias, userID, updatedAt, responseID,
		)
		if err != nil {
			return fmt.Errorf("updating response: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM availabilities WHERE response_id = ?`, responseID); err != nil {
			return fmt.Errorf("clearing availabilities: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO availabilities (response_id, slot) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sl := range req.Availabilities {
		if _, err := stmt.ExecContext(ctx, responseID, string(sl)); err != nil {
			return fmt.Errorf("inserting slot %s: %w", sl, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteResponse removes a participant's response. Deleting an alias that
// has no response is not an error.
func (s *SQLite) DeleteResponse(ctx context.Context, eventID, alias string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := eventExists(ctx, tx, eventID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM availabilities WHERE response_id IN (
			SELECT id FROM responses WHERE event_id = ? AND alias = ?
		)
	`, eventID, alias)
	if err != nil {
		return fmt.Errorf("deleting availabilities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE event_id = ? AND alias = ?`, eventID, alias); err != nil {
		return fmt.Errorf("deleting response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func eventExists(ctx context.Context, q querier, id string) error {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id = ?`, id).Scan(&n); err != nil {
		return fmt.Errorf("checking event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", event.ErrEventNotFound, id)
	}
	return nil
}

func getEvent(ctx context.Context, q querier, id string) (*event.Event, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, name, is_specific_dates, start_time, end_time, time_zone, created_at
		FROM events
		WHERE id = ?
	`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", event.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if e.Dates, err = loadDates(ctx, q, id); err != nil {
		return nil, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (*event.Event, error) {
	var (
		e         event.Event
		createdAt string
	)
	err := sc.Scan(&e.ID, &e.Name, &e.IsSpecificDates, &e.StartTime, &e.EndTime, &e.TimeZone, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	e.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &e, nil
}

func loadDates(ctx context.Context, q querier, id string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT date FROM event_dates WHERE event_id = ? ORDER BY date`, id)
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, normalizeDate(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dates: %w", err)
	}
	return dates, nil
}

// normalizeDate handles date strings the driver may return with a time part.
func normalizeDate(s string) string {
	if len(s) > len(slot.DateLayout) {
		return s[:len(slot.DateLayout)]
	}
	return s
}

// parseTimestamp accepts RFC 3339 and the SQLite CURRENT_TIMESTAMP layout.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
