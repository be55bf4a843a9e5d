package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidOTP          = errors.New("invalid otp")
	ErrOTPExpired          = errors.New("otp expired")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateUser       = errors.New("user already exists")
	ErrDuplicateApplicant  = errors.New("officer already registered with this email")
	ErrUnreadableDocument  = errors.New("document content is not readable")
	ErrStorageUnavailable  = errors.New("document upload to storage failed")
	ErrInvalidIssueStatus  = errors.New("invalid issue status")
)
