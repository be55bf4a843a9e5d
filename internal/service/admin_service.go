package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"civicfix/internal/domain"
	"civicfix/internal/export"
	"civicfix/internal/port"
)

// ExportFormat selects the officer report encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportOutput carries an encoded officer report plus the HTTP metadata
// needed to serve it as a download.
type ExportOutput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// AdminService defines the back-office contract for reviewing officer
// applications and overseeing reported issues.
type AdminService interface {
	ListOfficers(ctx context.Context) ([]domain.User, error)
	ApproveOfficer(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RejectOfficer(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	ExportOfficers(ctx context.Context, format ExportFormat) (*ExportOutput, error)
}

type adminService struct {
	userRepo  port.UserRepository
	issueRepo port.IssueRepository
}

// NewAdminService creates a new AdminService implementation.
func NewAdminService(userRepo port.UserRepository, issueRepo port.IssueRepository) AdminService {
	return &adminService{userRepo: userRepo, issueRepo: issueRepo}
}

func (s *adminService) ListOfficers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListOfficers(ctx)
}

// ApproveOfficer activates a pending officer account. Approval overrides the
// automated screening verdict, so it also marks the account verified.
func (s *adminService) ApproveOfficer(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.AccountStatusActive, true)
}

func (s *adminService) RejectOfficer(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.AccountStatusRejected, false)
}

func (s *adminService) setStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, verified bool) (*domain.User, error) {
	if err := s.userRepo.SetAccountStatus(ctx, id, status, verified); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *adminService) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	return s.issueRepo.ListAll(ctx)
}

func (s *adminService) ExportOfficers(ctx context.Context, format ExportFormat) (*ExportOutput, error) {
	officers, err := s.userRepo.ListOfficers(ctx)
	if err != nil {
		return nil, err
	}

	switch ExportFormat(strings.ToLower(string(format))) {
	case ExportFormatCSV, "":
		data, err := export.OfficerReportCSV(officers)
		if err != nil {
			return nil, fmt.Errorf("encoding officer report: %w", err)
		}
		return &ExportOutput{
			Data:        data,
			ContentType: "text/csv",
			Filename:    "officer-verification-report.csv",
		}, nil
	case ExportFormatXLSX:
		data, err := export.OfficerReportXLSX(officers)
		if err != nil {
			return nil, fmt.Errorf("encoding officer report: %w", err)
		}
		return &ExportOutput{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "officer-verification-report.xlsx",
		}, nil
	default:
		return nil, domain.ErrValidation
	}
}
