package domain

// FileType represents the allowed file types for document upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the role of a platform user.
type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleOfficer UserRole = "officer"
	RoleAdmin   UserRole = "admin"
)

// AccountStatus represents the lifecycle state of an officer account.
type AccountStatus string

const (
	AccountStatusActive        AccountStatus = "active"
	AccountStatusPendingReview AccountStatus = "pending_review"
	AccountStatusRejected      AccountStatus = "rejected"
)

// VerdictResult is the closed set of outcomes a document screening can produce.
// External scorer responses are normalized into this set via ParseVerdictResult.
type VerdictResult string

const (
	VerdictApproved    VerdictResult = "approved"
	VerdictNeedsReview VerdictResult = "needs_review"
	VerdictRejected    VerdictResult = "rejected"
	VerdictNotChecked  VerdictResult = "not_checked"
)

// ParseVerdictResult normalizes a raw scorer result string into a VerdictResult.
// Unrecognized values map to VerdictRejected: an unknown verdict must never
// activate an account.
func ParseVerdictResult(raw string) VerdictResult {
	switch normalizeVerdict(raw) {
	case "approved":
		return VerdictApproved
	case "needs_review", "pending_review":
		return VerdictNeedsReview
	case "not_checked":
		return VerdictNotChecked
	default:
		return VerdictRejected
	}
}

func normalizeVerdict(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '-' || r == ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// Provenance records which extraction path produced the text of a document.
type Provenance string

const (
	ProvenanceDirect Provenance = "direct"
	ProvenanceOCR    Provenance = "ocr-fallback"
	ProvenanceNone   Provenance = "none"
)

// IssueStatus represents the lifecycle of a reported civic issue.
type IssueStatus string

const (
	IssueStatusReported   IssueStatus = "Reported"
	IssueStatusInProgress IssueStatus = "In Progress"
	IssueStatusResolved   IssueStatus = "Resolved"
	IssueStatusRejected   IssueStatus = "Rejected"
)

// ValidIssueStatuses are the statuses an officer may set on an issue.
var ValidIssueStatuses = map[IssueStatus]bool{
	IssueStatusInProgress: true,
	IssueStatusResolved:   true,
	IssueStatusRejected:   true,
}
