package extract

import (
	"strings"

	"civicfix/internal/domain"
)

const (
	// OCRTriggerThreshold is the direct-extraction character count below
	// which the OCR fallback runs.
	OCRTriggerThreshold = 50

	// MinReadableLength is the trimmed character count below which the
	// combined extraction result is rejected as unreadable. Deliberately
	// stricter than OCRTriggerThreshold: the smaller number decides whether
	// to attempt OCR, this one decides whether the result is trustworthy.
	MinReadableLength = 100
)

// Validate gates extracted text before any storage or scoring work happens.
func Validate(result domain.ExtractedText) error {
	if result.Provenance == domain.ProvenanceNone {
		return domain.ErrUnreadableDocument
	}
	if len(strings.TrimSpace(result.Text)) < MinReadableLength {
		return domain.ErrUnreadableDocument
	}
	return nil
}
