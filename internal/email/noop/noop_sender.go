package noop

import (
	"context"
	"log"

	"civicfix/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs OTPs to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendOTP(_ context.Context, toEmail, toName, otp string) error {
	log.Printf("[NOOP EMAIL] OTP for %s (%s): %s", toName, toEmail, otp)
	return nil
}
