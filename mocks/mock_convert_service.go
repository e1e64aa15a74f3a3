package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vexport/internal/domain"
	"vexport/internal/service"
)

// MockConvertService is a mock implementation of service.ConvertService.
type MockConvertService struct {
	mock.Mock
}

func (m *MockConvertService) Convert(ctx context.Context, input service.ConvertInput) domain.Result {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Result)
}
