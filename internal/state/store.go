package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/BlackDragon0207/siro/internal/config"
	"github.com/BlackDragon0207/siro/internal/logging"
)

// Kind names one dedup record. Each scanner owns its kinds exclusively.
type Kind string

const (
	// KindUpload tracks the last notified standard upload.
	KindUpload Kind = "upload"
	// KindShorts tracks the last notified short.
	KindShorts Kind = "shorts"
	// KindLive tracks the currently notified live broadcast.
	KindLive Kind = "live"
)

// Kinds lists every record kind in display order.
func Kinds() []Kind {
	return []Kind{KindUpload, KindShorts, KindLive}
}

// Record is one persisted dedup document. The zero value is the documented
// all-null default returned for never-written or unreadable records.
//
// LastStartTime is only meaningful for KindLive, where it is set and cleared
// together with LastID.
type Record struct {
	LastID        string
	LastStartTime string
	UpdatedAt     time.Time
}

// Empty reports whether the record is the all-null default.
func (r Record) Empty() bool {
	return r.LastID == "" && r.LastStartTime == ""
}

// Store persists dedup records in SQLite, one row per kind, overwritten
// wholesale on update.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the state database and applies migrations.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.StateDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   dbPath,
		logger: logging.NewComponentLogger(logger, "state"),
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Read loads a record. Absent or unreadable records degrade to the all-null
// default; persistence problems are logged, never surfaced, so a broken
// database at worst re-notifies instead of crashing the poller.
func (s *Store) Read(ctx context.Context, kind Kind) Record {
	row := s.db.QueryRowContext(ctx,
		`SELECT last_id, last_start_time, updated_at FROM dedup_state WHERE kind = ?`, string(kind))

	var lastID, lastStart sql.NullString
	var updatedAt string
	if err := row.Scan(&lastID, &lastStart, &updatedAt); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("state read failed, using empty default",
				logging.String("kind", string(kind)),
				logging.Error(err))
		}
		return Record{}
	}

	record := Record{
		LastID:        lastID.String,
		LastStartTime: lastStart.String,
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		record.UpdatedAt = ts
	}
	return record
}

// Write overwrites the record for kind. For the live kind the id and start
// time must be set or cleared together.
func (s *Store) Write(ctx context.Context, kind Kind, record Record) error {
	if kind == KindLive && (record.LastID == "") != (record.LastStartTime == "") {
		return fmt.Errorf("live record fields must be set together: %+v", record)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dedup_state (kind, last_id, last_start_time, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(kind) DO UPDATE SET
             last_id = excluded.last_id,
             last_start_time = excluded.last_start_time,
             updated_at = excluded.updated_at`,
		string(kind),
		nullableString(record.LastID),
		nullableString(record.LastStartTime),
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("write state %s: %w", kind, err)
	}
	return nil
}

// Reset clears the record for kind back to the all-null default.
func (s *Store) Reset(ctx context.Context, kind Kind) error {
	return s.Write(ctx, kind, Record{})
}

// Entry pairs a kind with its stored record for listings.
type Entry struct {
	Kind   Kind
	Record Record
}

// List returns the record for every kind in display order.
func (s *Store) List(ctx context.Context) []Entry {
	kinds := Kinds()
	entries := make([]Entry, 0, len(kinds))
	for _, kind := range kinds {
		entries = append(entries, Entry{Kind: kind, Record: s.Read(ctx, kind)})
	}
	return entries
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
