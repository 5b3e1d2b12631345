package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

// sessionRow maps a sessions table row. Lists and summary live in the data document.
type sessionRow struct {
	ID        uuid.UUID `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (row *sessionRow) toDomain() (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(row.Data, &s); err != nil {
		return nil, fmt.Errorf("unmarshaling session data: %w", err)
	}
	s.ID = row.ID
	s.CreatedAt = row.CreatedAt
	s.UpdatedAt = row.UpdatedAt
	s.ExpiresAt = row.ExpiresAt
	return &s, nil
}

type sessionRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSessionRepo creates a new PostgreSQL-backed SessionRepository.
func NewSessionRepo(db *sqlx.DB) port.SessionRepository {
	return &sessionRepo{db: db, now: time.Now}
}

func (r *sessionRepo) Create(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("sessionRepo.Create: marshaling: %w", err)
	}
	query := `
		INSERT INTO sessions (id, data, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, s.ID, data, s.CreatedAt, s.UpdatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("sessionRepo.Create: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var row sessionRow
	query := `
		SELECT id, data, created_at, updated_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2`
	if err := r.db.GetContext(ctx, &row, query, id, r.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sessionRepo.Get: %w", err)
	}
	return row.toDomain()
}

func (r *sessionRepo) Update(ctx context.Context, id uuid.UUID, fn port.SessionUpdateFunc) (*domain.Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sessionRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.now().UTC()
	var row sessionRow
	query := `
		SELECT id, data, created_at, updated_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
		FOR UPDATE`
	if err := tx.GetContext(ctx, &row, query, id, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sessionRepo.Update: select: %w", err)
	}

	s, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = now

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("sessionRepo.Update: marshaling: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET data = $2, updated_at = $3, expires_at = $4 WHERE id = $1`,
		id, data, s.UpdatedAt, s.ExpiresAt); err != nil {
		return nil, fmt.Errorf("sessionRepo.Update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sessionRepo.Update: commit: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1 AND expires_at > $2`, id, r.now().UTC())
	if err != nil {
		return fmt.Errorf("sessionRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sessionRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("sessionRepo.DeleteExpired: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sessionRepo.DeleteExpired rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *sessionRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
