package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medexplain/internal/domain"
)

// MockMatrixRunner is a mock implementation of service.MatrixRunner.
type MockMatrixRunner struct {
	mock.Mock
}

func (m *MockMatrixRunner) Validate(meds, foods []string) error {
	args := m.Called(meds, foods)
	return args.Error(0)
}

func (m *MockMatrixRunner) Run(ctx context.Context, meds, foods []string) (*domain.MatrixResult, error) {
	args := m.Called(ctx, meds, foods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResult), args.Error(1)
}
