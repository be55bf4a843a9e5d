package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"civicfix/internal/domain"
	"civicfix/internal/port"
)

// MockIssueAnalyzer is a mock implementation of port.IssueAnalyzer.
type MockIssueAnalyzer struct {
	mock.Mock
}

func (m *MockIssueAnalyzer) AnalyzeIssue(ctx context.Context, input port.AnalyzeInput) (*domain.IssueAnalysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueAnalysis), args.Error(1)
}
