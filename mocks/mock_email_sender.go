package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOTP(ctx context.Context, toEmail, toName, otp string) error {
	args := m.Called(ctx, toEmail, toName, otp)
	return args.Error(0)
}
