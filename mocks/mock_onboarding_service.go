package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"civicfix/internal/domain"
	"civicfix/internal/service"
)

// MockOnboardingService is a mock implementation of service.OnboardingService.
type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) Register(ctx context.Context, input service.OnboardingInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
