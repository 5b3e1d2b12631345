package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"medexplain/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summarize(ctx context.Context, doc *domain.Document) (*domain.ReportAnalysis, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportAnalysis), args.Error(1)
}

func (m *MockReportService) SummarizeIntoSession(ctx context.Context, id uuid.UUID, doc *domain.Document) (*domain.ReportAnalysis, error) {
	args := m.Called(ctx, id, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportAnalysis), args.Error(1)
}

func (m *MockReportService) SessionReport(ctx context.Context, id uuid.UUID) (*domain.ReportAnalysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportAnalysis), args.Error(1)
}
