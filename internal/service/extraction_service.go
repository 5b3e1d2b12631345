package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

// ExtractionResult is the outcome of extracting medications into a session.
type ExtractionResult struct {
	Session   *domain.Session
	Extracted []domain.Medication
	Added     int
}

// ExtractionService defines the prescription extraction contract.
type ExtractionService interface {
	// Extract returns the medications found in doc without touching any session.
	Extract(ctx context.Context, doc *domain.Document) ([]domain.Medication, error)
	// ExtractIntoSession appends the medications found in doc after the session's
	// existing entries. On failure the session is left as it was.
	ExtractIntoSession(ctx context.Context, id uuid.UUID, doc *domain.Document) (*ExtractionResult, error)
}

type extractionService struct {
	understanding port.DocumentUnderstanding
	repo          port.SessionRepository
	logger        *zap.Logger
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(understanding port.DocumentUnderstanding, repo port.SessionRepository, logger *zap.Logger) ExtractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &extractionService{understanding: understanding, repo: repo, logger: logger}
}

func (s *extractionService) Extract(ctx context.Context, doc *domain.Document) ([]domain.Medication, error) {
	return s.understanding.ExtractMedications(ctx, doc)
}

func (s *extractionService) ExtractIntoSession(ctx context.Context, id uuid.UUID, doc *domain.Document) (*ExtractionResult, error) {
	// Fail fast on an unknown session before spending a model request.
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	meds, err := s.understanding.ExtractMedications(ctx, doc)
	if err != nil {
		s.logger.Warn("medication extraction failed",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	var added int
	sess, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		added = sess.AppendMedications(meds)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("medications appended to session",
		zap.String("session_id", id.String()),
		zap.Int("extracted", len(meds)),
		zap.Int("added", added))
	return &ExtractionResult{Session: sess, Extracted: meds, Added: added}, nil
}
