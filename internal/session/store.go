package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"beetbridge/internal/config"
	"beetbridge/internal/decision"
)

// Stored is one persisted decision record with its bookkeeping columns.
type Stored struct {
	ID        int64
	Token     string
	Record    decision.Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store manages decision persistence backed by SQLite. One process holds
// the store at a time, guarded by a file lock beside the database.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the session database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.SessionDir, "session.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.SessionDir, "session.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle and the session lock.
func (s *Store) Close() error {
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Save persists a freshly parsed decision record and returns its row ID.
func (s *Store) Save(ctx context.Context, record decision.Record) (int64, error) {
	ctx = ensureContext(ctx)

	payload, err := json.Marshal(record)
	if err != nil {
		return 0, fmt.Errorf("encode record: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	token := uuid.NewString()

	var result sql.Result
	err = retryOnBusy(ctx, func() error {
		var execErr error
		result, execErr = s.db.ExecContext(ctx,
			`INSERT INTO decisions (token, subject_path, outcome, selected_index, payload, created_at, updated_at)
			 VALUES (?, ?, ?, NULL, ?, ?, ?)`,
			token, record.SubjectPath, string(record.Outcome), string(payload), now, now)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("insert decision: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read decision id: %w", err)
	}
	return id, nil
}

// Current returns the most recently saved decision.
func (s *Store) Current(ctx context.Context) (*Stored, error) {
	return s.queryOne(ctx,
		`SELECT id, token, selected_index, payload, created_at, updated_at
		 FROM decisions ORDER BY id DESC LIMIT 1`)
}

// Get returns a decision by row ID.
func (s *Store) Get(ctx context.Context, id int64) (*Stored, error) {
	return s.queryOne(ctx,
		`SELECT id, token, selected_index, payload, created_at, updated_at
		 FROM decisions WHERE id = ?`, id)
}

// SelectCandidate records the user's 1-based candidate choice on a stored
// decision. The index must address an existing candidate.
func (s *Store) SelectCandidate(ctx context.Context, id int64, index int) error {
	ctx = ensureContext(ctx)

	stored, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if stored.Record.Outcome != decision.OutcomeHasCandidates ||
		index < 1 || index > len(stored.Record.Candidates) {
		return fmt.Errorf("%w: index %d of %d candidates", ErrNoSelection, index, len(stored.Record.Candidates))
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	return retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx,
			`UPDATE decisions SET selected_index = ?, updated_at = ? WHERE id = ?`,
			index, now, id)
		return execErr
	})
}

// Clear removes every stored decision.
func (s *Store) Clear(ctx context.Context) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `DELETE FROM decisions`)
		return execErr
	})
}

// Recent lists the latest stored decisions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Stored, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, token, selected_index, payload, created_at, updated_at
		 FROM decisions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		stored, err := scanStored(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *stored)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) queryOne(ctx context.Context, query string, args ...any) (*Stored, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, query, args...)
	stored, err := scanStored(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return stored, err
}

func scanStored(row rowScanner) (*Stored, error) {
	var (
		stored        Stored
		selectedIndex sql.NullInt64
		payload       string
		createdAt     string
		updatedAt     string
	)
	if err := row.Scan(&stored.ID, &stored.Token, &selectedIndex, &payload, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan decision: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &stored.Record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if selectedIndex.Valid {
		index := int(selectedIndex.Int64)
		stored.Record.SelectedIndex = &index
	}
	stored.CreatedAt = parseTime(createdAt)
	stored.UpdatedAt = parseTime(updatedAt)
	return &stored, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
