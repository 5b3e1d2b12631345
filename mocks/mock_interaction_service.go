package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"medexplain/internal/domain"
)

// MockInteractionService is a mock implementation of service.InteractionService.
type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) Check(ctx context.Context, medications, foods []string) (*domain.MatrixResult, error) {
	args := m.Called(ctx, medications, foods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResult), args.Error(1)
}

func (m *MockInteractionService) CheckSession(ctx context.Context, id uuid.UUID) (*domain.MatrixResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResult), args.Error(1)
}
