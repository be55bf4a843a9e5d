package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/extract"
	"civicfix/internal/port"
)

// documentFolder is the storage prefix for officer supporting documents.
const documentFolder = "officer-documents"

// OnboardingInput is the DTO for officer registration requests.
type OnboardingInput struct {
	Name        string
	Email       string
	Phone       string
	Department  string
	Designation string
	Document    domain.UploadedDocument
}

// OnboardingService runs the officer verification pipeline: duplicate check,
// text extraction, readability validation, document upload, relevance scoring,
// and the account-activation decision.
type OnboardingService interface {
	Register(ctx context.Context, input OnboardingInput) (*domain.User, error)
}

type onboardingService struct {
	userRepo  port.UserRepository
	extractor port.TextExtractor
	storage   port.ObjectStorage
	scorer    port.RelevanceScorer
	s3cfg     *config.S3Config
}

// NewOnboardingService creates a new OnboardingService implementation.
func NewOnboardingService(
	userRepo port.UserRepository,
	extractor port.TextExtractor,
	storage port.ObjectStorage,
	scorer port.RelevanceScorer,
	s3cfg *config.S3Config,
) OnboardingService {
	return &onboardingService{
		userRepo:  userRepo,
		extractor: extractor,
		storage:   storage,
		scorer:    scorer,
		s3cfg:     s3cfg,
	}
}

func (s *onboardingService) Register(ctx context.Context, input OnboardingInput) (*domain.User, error) {
	// The temp document must be gone after every exit path, success included.
	defer s.removeDocument(input.Document)

	if input.Designation == "" {
		input.Designation = "Officer"
	}

	// Cheap existence check gates the expensive extraction work.
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking existing account: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateApplicant
	}

	extracted, err := s.extractor.Extract(ctx, input.Document)
	if err != nil {
		log.Printf("onboarding: extraction failed for %s: %v", input.Email, err)
		return nil, domain.ErrUnreadableDocument
	}
	if err := extract.Validate(extracted); err != nil {
		return nil, err
	}

	documentURL, err := s.uploadDocument(ctx, input.Document)
	if err != nil {
		log.Printf("onboarding: document upload failed for %s: %v", input.Email, err)
		return nil, domain.ErrStorageUnavailable
	}

	// Scoring never aborts the pipeline; a failed call degrades to a
	// sentinel verdict that routes the account into manual review.
	verdict := s.scoreDocument(ctx, extracted, input, documentURL)

	status, verified := Decide(verdict)

	user := &domain.User{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Role:              domain.RoleOfficer,
		PreferredLanguage: "en",
		Department:        input.Department,
		Designation:       input.Designation,
		AccountStatus:     status,
		DocumentURL:       documentURL,
		AIScore:           verdict.Score,
		AIResult:          verdict.Result,
		AIReason:          verdict.Reason,
		IsVerified:        verified,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			// Lost a race with a concurrent signup for the same email;
			// the unique constraint is the authority.
			return nil, domain.ErrDuplicateApplicant
		}
		return nil, fmt.Errorf("persisting officer account: %w", err)
	}
	return user, nil
}

func (s *onboardingService) uploadDocument(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	f, err := os.Open(doc.Path)
	if err != nil {
		return "", fmt.Errorf("opening document: %w", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat document: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s", documentFolder, uuid.New(), doc.OriginalName)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        f,
		ContentType: doc.ContentType,
		Size:        fi.Size(),
	})
	if err != nil {
		return "", err
	}
	return out.Location, nil
}

func (s *onboardingService) scoreDocument(ctx context.Context, extracted domain.ExtractedText, input OnboardingInput, documentURL string) domain.ScreeningVerdict {
	verdict, err := s.scorer.ScoreDocument(ctx, port.ScoreInput{
		Text:        extracted.Text,
		Department:  input.Department,
		Designation: input.Designation,
		DocumentURL: documentURL,
	})
	if err != nil {
		log.Printf("onboarding: screening call failed for %s: %v", input.Email, err)
		return domain.ScreeningVerdict{
			Score:  0,
			Result: domain.VerdictNotChecked,
			Reason: "screening service unavailable: " + err.Error(),
		}
	}
	return *verdict
}

func (s *onboardingService) removeDocument(doc domain.UploadedDocument) {
	if doc.Path == "" {
		return
	}
	if err := os.Remove(doc.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("onboarding: removing temp document %s: %v", doc.Path, err)
	}
}
