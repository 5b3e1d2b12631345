package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medexplain/internal/domain"
	"medexplain/internal/port"
)

// ReportService defines the lab report summarization contract.
type ReportService interface {
	Summarize(ctx context.Context, doc *domain.Document) (*domain.ReportAnalysis, error)
	// SummarizeIntoSession clears the stored summary, then stores the new one.
	// A failed request leaves the session without a summary.
	SummarizeIntoSession(ctx context.Context, id uuid.UUID, doc *domain.Document) (*domain.ReportAnalysis, error)
	SessionReport(ctx context.Context, id uuid.UUID) (*domain.ReportAnalysis, error)
}

type reportService struct {
	understanding port.DocumentUnderstanding
	repo          port.SessionRepository
	logger        *zap.Logger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(understanding port.DocumentUnderstanding, repo port.SessionRepository, logger *zap.Logger) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{understanding: understanding, repo: repo, logger: logger}
}

func (s *reportService) Summarize(ctx context.Context, doc *domain.Document) (*domain.ReportAnalysis, error) {
	summary, err := s.understanding.SummarizeReport(ctx, doc)
	if err != nil {
		return nil, err
	}
	return domain.AnalyzeReport(summary), nil
}

func (s *reportService) SummarizeIntoSession(ctx context.Context, id uuid.UUID, doc *domain.Document) (*domain.ReportAnalysis, error) {
	if _, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		sess.ClearSummary()
		return nil
	}); err != nil {
		return nil, err
	}

	summary, err := s.understanding.SummarizeReport(ctx, doc)
	if err != nil {
		s.logger.Warn("report summarization failed",
			zap.String("session_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Update(ctx, id, func(sess *domain.Session) error {
		sess.SetSummary(summary)
		return nil
	}); err != nil {
		return nil, err
	}

	analysis := domain.AnalyzeReport(summary)
	s.logger.Info("report summarized",
		zap.String("session_id", id.String()),
		zap.Int("findings", len(summary.Findings)),
		zap.String("overall_status", string(analysis.OverallStatus)))
	return analysis, nil
}

func (s *reportService) SessionReport(ctx context.Context, id uuid.UUID) (*domain.ReportAnalysis, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Summary == nil {
		return nil, domain.ErrNotFound
	}
	return domain.AnalyzeReport(sess.Summary), nil
}
