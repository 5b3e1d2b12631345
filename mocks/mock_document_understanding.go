package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medexplain/internal/domain"
)

// MockDocumentUnderstanding is a mock implementation of port.DocumentUnderstanding.
type MockDocumentUnderstanding struct {
	mock.Mock
}

func (m *MockDocumentUnderstanding) ExtractMedications(ctx context.Context, doc *domain.Document) ([]domain.Medication, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Medication), args.Error(1)
}

func (m *MockDocumentUnderstanding) SummarizeReport(ctx context.Context, doc *domain.Document) (*domain.ReportSummary, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSummary), args.Error(1)
}

func (m *MockDocumentUnderstanding) CheckInteraction(ctx context.Context, medications, foods []string) ([]domain.InteractionStatement, error) {
	args := m.Called(ctx, medications, foods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InteractionStatement), args.Error(1)
}
