// Package sqlite provides a single-file session store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

// SessionStore persists sessions as JSON documents in a sqlite database.
// Timestamps used in queries are stored as Unix nanoseconds.
type SessionStore struct {
	db  *sqlx.DB
	now func() time.Time
}

type sessionRow struct {
	ID   string `db:"id"`
	Data string `db:"data"`
}

// NewSessionStore opens (or creates) the database at path and initializes the schema.
func NewSessionStore(path string) (*SessionStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes writers, which makes Update's read-modify-write atomic.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SessionStore{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SessionStore) Create(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sqlite.Create: marshaling: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, data, created_at, updated_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID.String(), string(data), sess.CreatedAt.UnixNano(), sess.UpdatedAt.UnixNano(), sess.ExpiresAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite.Create: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, data FROM sessions WHERE id = ? AND expires_at > ?`,
		id.String(), s.now().UnixNano())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sqlite.Get: %w", err)
	}
	return decodeSession(row.Data)
}

func (s *SessionStore) Update(ctx context.Context, id uuid.UUID, fn port.SessionUpdateFunc) (*domain.Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now()
	var row sessionRow
	err = tx.GetContext(ctx, &row,
		`SELECT id, data FROM sessions WHERE id = ? AND expires_at > ?`,
		id.String(), now.UnixNano())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sqlite.Update: select: %w", err)
	}

	sess, err := decodeSession(row.Data)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = now.UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Update: marshaling: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET data = ?, updated_at = ?, expires_at = ? WHERE id = ?`,
		string(data), sess.UpdatedAt.UnixNano(), sess.ExpiresAt.UnixNano(), id.String()); err != nil {
		return nil, fmt.Errorf("sqlite.Update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite.Update: commit: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ? AND expires_at > ?`, id.String(), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("sqlite.DeleteExpired: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite.DeleteExpired rows affected: %w", err)
	}
	return int(rows), nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func decodeSession(data string) (*domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("unmarshaling session data: %w", err)
	}
	return &sess, nil
}
