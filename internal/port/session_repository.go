package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"medexplain/internal/domain"
)

// SessionUpdateFunc mutates a loaded session. Returning an error discards the change.
type SessionUpdateFunc func(s *domain.Session) error

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	// Update applies fn to the stored session atomically and returns the saved copy.
	Update(ctx context.Context, id uuid.UUID, fn SessionUpdateFunc) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	Ping(ctx context.Context) error
}
