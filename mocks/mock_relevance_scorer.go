package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"civicfix/internal/domain"
	"civicfix/internal/port"
)

// MockRelevanceScorer is a mock implementation of port.RelevanceScorer.
type MockRelevanceScorer struct {
	mock.Mock
}

func (m *MockRelevanceScorer) ScoreDocument(ctx context.Context, input port.ScoreInput) (*domain.ScreeningVerdict, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScreeningVerdict), args.Error(1)
}
