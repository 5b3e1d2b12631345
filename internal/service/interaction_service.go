package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

// MatrixRunner runs the medication by food interaction grid.
type MatrixRunner interface {
	Validate(meds, foods []string) error
	Run(ctx context.Context, meds, foods []string) (*domain.MatrixResult, error)
}

// InteractionService defines the food-medication interaction contract.
type InteractionService interface {
	Check(ctx context.Context, medications, foods []string) (*domain.MatrixResult, error)
	// CheckSession runs the grid over the session's stored lists and replaces the
	// stored interactions with the result.
	CheckSession(ctx context.Context, id uuid.UUID) (*domain.MatrixResult, error)
}

type interactionService struct {
	runner MatrixRunner
	repo   port.SessionRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewInteractionService creates a new InteractionService implementation.
func NewInteractionService(runner MatrixRunner, repo port.SessionRepository, logger *zap.Logger) InteractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &interactionService{runner: runner, repo: repo, now: time.Now, logger: logger}
}

func (s *interactionService) Check(ctx context.Context, medications, foods []string) (*domain.MatrixResult, error) {
	return s.runner.Run(context.WithoutCancel(ctx), medications, foods)
}

func (s *interactionService) CheckSession(ctx context.Context, id uuid.UUID) (*domain.MatrixResult, error) {
	// Input the runner rejects leaves the stored interactions untouched; otherwise
	// they are cleared before the run and stay cleared if it fails.
	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		if err := s.runner.Validate(sess.MedicationNames(), sess.FoodNames()); err != nil {
			return err
		}
		sess.ClearInteractions()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A started run completes even if the client goes away.
	runCtx := context.WithoutCancel(ctx)
	result, err := s.runner.Run(runCtx, sess.MedicationNames(), sess.FoodNames())
	if err != nil {
		s.logger.Warn("interaction check failed",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	checkedAt := s.now().UTC()
	if _, err := s.repo.Update(runCtx, id, func(sess *domain.Session) error {
		sess.ReplaceInteractions(result.Records, checkedAt)
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}
