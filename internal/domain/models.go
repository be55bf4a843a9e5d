package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a citizen, officer, or admin account.
// Officer-specific columns stay at their zero values for citizens and admins.
type User struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	Name              string        `db:"name" json:"name"`
	Email             string        `db:"email" json:"email"`
	Phone             string        `db:"phone" json:"phone"`
	Role              UserRole      `db:"role" json:"role"`
	PreferredLanguage string        `db:"preferred_language" json:"preferred_language"`
	PasswordHash      string        `db:"password_hash" json:"-"`
	OTP               string        `db:"otp" json:"-"`
	OTPExpiry         *time.Time    `db:"otp_expiry" json:"-"`
	IsVerified        bool          `db:"is_verified" json:"is_verified"`
	Department        string        `db:"department" json:"department,omitempty"`
	Designation       string        `db:"designation" json:"designation,omitempty"`
	AccountStatus     AccountStatus `db:"account_status" json:"account_status,omitempty"`
	DocumentURL       string        `db:"document_url" json:"document_url,omitempty"`
	AIScore           float64       `db:"ai_score" json:"ai_score"`
	AIResult          VerdictResult `db:"ai_result" json:"ai_result,omitempty"`
	AIReason          string        `db:"ai_reason" json:"ai_reason,omitempty"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// Issue represents a civic issue reported by a citizen.
type Issue struct {
	ID                int64       `db:"id" json:"id"`
	CitizenID         uuid.UUID   `db:"citizen_id" json:"citizen_id"`
	ImageURL          string      `db:"image_url" json:"image_url"`
	VoiceText         string      `db:"voice_text" json:"voice_text"`
	Language          string      `db:"language" json:"language"`
	Category          string      `db:"category" json:"category"`
	Latitude          float64     `db:"latitude" json:"latitude"`
	Longitude         float64     `db:"longitude" json:"longitude"`
	Status            IssueStatus `db:"status" json:"status"`
	AssignedOfficerID *uuid.UUID  `db:"assigned_officer_id" json:"assigned_officer_id,omitempty"`
	AIStatus          string      `db:"ai_status" json:"ai_status"`
	AIConfidence      float64     `db:"ai_confidence" json:"ai_confidence"`
	AIReason          string      `db:"ai_reason" json:"ai_reason"`
	ReportedAt        time.Time   `db:"reported_at" json:"reported_at"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
}

// UploadedDocument is the ephemeral handle to an applicant's supporting
// document. The onboarding pipeline owns the file at Path and deletes it on
// every exit path.
type UploadedDocument struct {
	Path         string
	ContentType  string
	OriginalName string
}

// ExtractedText is the result of running the extraction ladder over a document.
type ExtractedText struct {
	Text       string
	Provenance Provenance
}

// ScreeningVerdict is the normalized outcome of scoring a document against the
// claimed department and designation.
type ScreeningVerdict struct {
	Score  float64       `json:"score"`
	Result VerdictResult `json:"result"`
	Reason string        `json:"reason"`
}

// IssueAnalysis is the AI categorization result for a reported issue.
type IssueAnalysis struct {
	Category   string  `json:"category"`
	Status     string  `json:"ai_status"`
	Confidence float64 `json:"ai_confidence"`
	Reason     string  `json:"ai_reason"`
}
