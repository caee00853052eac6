package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// WhenLayout is the timestamp format stored for events: ISO-8601 local
// time at minute precision, no timezone.
const WhenLayout = "2006-01-02T15:04"

// Event is a scheduled item. Listings are always ascending by timestamp.
type Event struct {
	ID    int64
	Title string
	When  string // WhenLayout-formatted local timestamp
}

// WhenTime parses the event's stored timestamp.
func (e Event) WhenTime() (time.Time, error) {
	return time.ParseInLocation(WhenLayout, e.When, time.Local)
}

// ParseError reports a time phrase no parsing rule matched.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schedule: could not parse time from: %s", e.Input)
}

// Scheduler persists events in a local SQLite file.
type Scheduler struct {
	db     *sql.DB
	logger *logrus.Logger
	now    func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets a structured logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNow overrides the reference clock used for time parsing.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a scheduler backed by the SQLite file at dbPath and creates
// the events table. A single connection serializes all access, so
// concurrent writers never hit SQLITE_BUSY.
func Open(dbPath string, opts ...Option) (*Scheduler, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open events db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Scheduler{
		db:     db,
		logger: logrus.New(),
		now:    time.Now,
	}
	s.logger.SetOutput(io.Discard)
	for _, opt := range opts {
		opt(s)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		when_ts TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Scheduler) Close() error {
	return s.db.Close()
}

// AddEvent parses whenStr and inserts an event, returning its id.
func (s *Scheduler) AddEvent(ctx context.Context, title, whenStr string) (int64, error) {
	when, ok := ParseNaturalTime(whenStr, s.now())
	if !ok {
		return 0, &ParseError{Input: whenStr}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events(title, when_ts) VALUES (?, ?)`,
		title, when.Format(WhenLayout))
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{"event_id": id, "when": when.Format(WhenLayout)}).Debug("event added")
	return id, nil
}

// ListEvents returns all events ascending by timestamp.
func (s *Scheduler) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, when_ts FROM events ORDER BY when_ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.When); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// RemoveEvent deletes an event by id, reporting whether it existed.
func (s *Scheduler) RemoveEvent(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
