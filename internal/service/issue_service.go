package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/port"
)

// photoFolder is the storage prefix for issue evidence photos.
const photoFolder = "issue-photos"

// ReportIssueInput is the DTO for issue reports.
type ReportIssueInput struct {
	CitizenID   uuid.UUID
	ImageBase64 string
	VoiceText   string
	Language    string
	Latitude    float64
	Longitude   float64
	ReportedAt  time.Time
}

// IssueService defines the civic-issue reporting contract.
type IssueService interface {
	Report(ctx context.Context, input ReportIssueInput) (*domain.Issue, error)
	ListMine(ctx context.Context, citizenID uuid.UUID) ([]domain.Issue, error)
	GetForCitizen(ctx context.Context, id int64, citizenID uuid.UUID) (*domain.Issue, error)
	ListForDepartment(ctx context.Context, department string, officerID uuid.UUID) ([]domain.Issue, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus, officerID uuid.UUID) (*domain.Issue, error)
}

type issueService struct {
	issueRepo port.IssueRepository
	storage   port.ObjectStorage
	analyzer  port.IssueAnalyzer
	s3cfg     *config.S3Config
}

// NewIssueService creates a new IssueService implementation.
func NewIssueService(
	issueRepo port.IssueRepository,
	storage port.ObjectStorage,
	analyzer port.IssueAnalyzer,
	s3cfg *config.S3Config,
) IssueService {
	return &issueService{
		issueRepo: issueRepo,
		storage:   storage,
		analyzer:  analyzer,
		s3cfg:     s3cfg,
	}
}

func (s *issueService) Report(ctx context.Context, input ReportIssueInput) (*domain.Issue, error) {
	imageURL, err := s.uploadPhoto(ctx, input.ImageBase64)
	if err != nil {
		log.Printf("issue: photo upload failed for citizen %s: %v", input.CitizenID, err)
		return nil, err
	}

	// Categorization is best-effort: a degraded AI service must not block
	// a citizen from filing an issue.
	analysis := s.analyzeIssue(ctx, input)

	if input.ReportedAt.IsZero() {
		input.ReportedAt = time.Now()
	}
	issue := &domain.Issue{
		CitizenID:    input.CitizenID,
		ImageURL:     imageURL,
		VoiceText:    input.VoiceText,
		Language:     input.Language,
		Category:     analysis.Category,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Status:       domain.IssueStatusReported,
		AIStatus:     analysis.Status,
		AIConfidence: analysis.Confidence,
		AIReason:     analysis.Reason,
		ReportedAt:   input.ReportedAt,
	}
	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) ListMine(ctx context.Context, citizenID uuid.UUID) ([]domain.Issue, error) {
	return s.issueRepo.ListByCitizen(ctx, citizenID)
}

func (s *issueService) GetForCitizen(ctx context.Context, id int64, citizenID uuid.UUID) (*domain.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue.CitizenID != citizenID {
		return nil, domain.ErrNotFound
	}
	return issue, nil
}

func (s *issueService) ListForDepartment(ctx context.Context, department string, officerID uuid.UUID) ([]domain.Issue, error) {
	if department == "" {
		return nil, domain.ErrForbidden
	}
	return s.issueRepo.ListByDepartment(ctx, department, officerID)
}

func (s *issueService) UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus, officerID uuid.UUID) (*domain.Issue, error) {
	if !domain.ValidIssueStatuses[status] {
		return nil, domain.ErrInvalidIssueStatus
	}
	return s.issueRepo.UpdateStatus(ctx, id, status, officerID)
}

// uploadPhoto decodes the submitted base64 image and stores it durably,
// returning the permanent URL. Keeping photo bytes out of the relational
// store bounds row size.
func (s *issueService) uploadPhoto(ctx context.Context, imageBase64 string) (string, error) {
	// Strip a data:image/...;base64, prefix if present.
	if idx := strings.Index(imageBase64, ","); idx >= 0 {
		imageBase64 = imageBase64[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("%w: image is not valid base64", domain.ErrValidation)
	}

	contentType := http.DetectContentType(data)
	fileType, ok := domain.AllowedContentTypes[contentType]
	if !ok || fileType == domain.FileTypePDF {
		return "", domain.ErrUnsupportedFileType
	}

	key := fmt.Sprintf("%s/%s.%s", photoFolder, uuid.New(), fileType)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return "", domain.ErrStorageUnavailable
	}
	return out.Location, nil
}

func (s *issueService) analyzeIssue(ctx context.Context, input ReportIssueInput) domain.IssueAnalysis {
	analysis, err := s.analyzer.AnalyzeIssue(ctx, port.AnalyzeInput{
		ImageBase64: input.ImageBase64,
		Text:        input.VoiceText,
	})
	if err != nil {
		log.Printf("issue: AI analysis failed for citizen %s: %v", input.CitizenID, err)
		return domain.IssueAnalysis{
			Category:   "Uncategorized",
			Status:     "Pending",
			Confidence: 0,
			Reason:     "AI service unavailable",
		}
	}
	return *analysis
}
