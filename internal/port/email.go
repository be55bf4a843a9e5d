package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendOTP(ctx context.Context, toEmail, toName, otp string) error
}
