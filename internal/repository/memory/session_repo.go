// Package memory provides an in-process session store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

type sessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
	now      func() time.Time
}

// NewSessionRepo creates an in-memory SessionRepository.
func NewSessionRepo() port.SessionRepository {
	return NewSessionRepoWithClock(time.Now)
}

// NewSessionRepoWithClock creates an in-memory SessionRepository that reads time from now.
func NewSessionRepoWithClock(now func() time.Time) port.SessionRepository {
	return &sessionRepo{
		sessions: make(map[uuid.UUID]*domain.Session),
		now:      now,
	}
}

func (r *sessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *sessionRepo) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.live(id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (r *sessionRepo) Update(_ context.Context, id uuid.UUID, fn port.SessionUpdateFunc) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, err := r.live(id)
	if err != nil {
		return nil, err
	}
	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = r.now().UTC()
	r.sessions[id] = working
	return working.Clone(), nil
}

func (r *sessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.live(id); err != nil {
		return err
	}
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepo) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *sessionRepo) Ping(_ context.Context) error {
	return nil
}

// live returns the stored session if present and unexpired. Callers hold r.mu.
func (r *sessionRepo) live(id uuid.UUID) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok || s.Expired(r.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}
