package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medexplain/internal/domain"
	"medexplain/internal/observability/metrics"
	"medexplain/internal/port"
)

// AddMedicationInput is the DTO for manually adding a medication to a session.
type AddMedicationInput struct {
	Name      string
	Dosage    string
	Frequency string
}

// SessionService defines the session lifecycle and list editing contract.
type SessionService interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMedication(ctx context.Context, id uuid.UUID, input *AddMedicationInput) (*domain.Session, error)
	RemoveMedication(ctx context.Context, id uuid.UUID, index int) (*domain.Session, error)
	// AddFood reports whether the food was added; a duplicate name leaves the list unchanged.
	AddFood(ctx context.Context, id uuid.UUID, name string) (*domain.Session, bool, error)
	RemoveFood(ctx context.Context, id uuid.UUID, index int) (*domain.Session, error)
}

type sessionService struct {
	repo    port.SessionRepository
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(repo port.SessionRepository, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionService{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		metrics: m,
	}
}

func (s *sessionService) Create(ctx context.Context) (*domain.Session, error) {
	sess := domain.NewSession(s.now().UTC(), s.ttl)
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.metrics.SessionCreated()
	s.logger.Debug("session created", zap.String("session_id", sess.ID.String()))
	return sess, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.repo.Get(ctx, id)
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *sessionService) AddMedication(ctx context.Context, id uuid.UUID, input *AddMedicationInput) (*domain.Session, error) {
	med, err := domain.NewMedication(input.Name, input.Dosage, input.Frequency)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, func(sess *domain.Session) error {
		return sess.AddMedication(med)
	})
}

func (s *sessionService) RemoveMedication(ctx context.Context, id uuid.UUID, index int) (*domain.Session, error) {
	return s.repo.Update(ctx, id, func(sess *domain.Session) error {
		return sess.RemoveMedication(index)
	})
}

func (s *sessionService) AddFood(ctx context.Context, id uuid.UUID, name string) (*domain.Session, bool, error) {
	var added bool
	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		var err error
		added, err = sess.AddFood(name)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return sess, added, nil
}

func (s *sessionService) RemoveFood(ctx context.Context, id uuid.UUID, index int) (*domain.Session, error) {
	return s.repo.Update(ctx, id, func(sess *domain.Session) error {
		return sess.RemoveFood(index)
	})
}
