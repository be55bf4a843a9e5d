package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"civicfix/internal/domain"
	"civicfix/internal/service"
	"civicfix/mocks"
)

func sampleOfficers() []domain.User {
	return []domain.User{
		{
			ID:            uuid.New(),
			Name:          "Asha Verma",
			Email:         "asha.verma@example.gov",
			Department:    "Sanitation",
			Designation:   "Field Inspector",
			AccountStatus: domain.AccountStatusPendingReview,
			AIScore:       0.42,
			AIResult:      domain.VerdictNeedsReview,
			AIReason:      "partial department match",
			CreatedAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		},
	}
}

func TestAdmin_ApproveOfficer_ActivatesAndVerifies(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	issueRepo := new(mocks.MockIssueRepo)
	svc := service.NewAdminService(userRepo, issueRepo)

	id := uuid.New()
	userRepo.On("SetAccountStatus", mock.Anything, id, domain.AccountStatusActive, true).Return(nil)
	userRepo.On("GetByID", mock.Anything, id).
		Return(&domain.User{ID: id, AccountStatus: domain.AccountStatusActive, IsVerified: true}, nil)

	officer, err := svc.ApproveOfficer(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, officer.AccountStatus)
	userRepo.AssertExpectations(t)
}

func TestAdmin_RejectOfficer(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAdminService(userRepo, new(mocks.MockIssueRepo))

	id := uuid.New()
	userRepo.On("SetAccountStatus", mock.Anything, id, domain.AccountStatusRejected, false).Return(nil)
	userRepo.On("GetByID", mock.Anything, id).
		Return(&domain.User{ID: id, AccountStatus: domain.AccountStatusRejected}, nil)

	officer, err := svc.RejectOfficer(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountStatusRejected, officer.AccountStatus)
}

func TestAdmin_RejectOfficer_NotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAdminService(userRepo, new(mocks.MockIssueRepo))

	id := uuid.New()
	userRepo.On("SetAccountStatus", mock.Anything, id, domain.AccountStatusRejected, false).
		Return(domain.ErrNotFound)

	_, err := svc.RejectOfficer(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdmin_ExportOfficers_CSV(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAdminService(userRepo, new(mocks.MockIssueRepo))

	userRepo.On("ListOfficers", mock.Anything).Return(sampleOfficers(), nil)

	out, err := svc.ExportOfficers(context.Background(), service.ExportFormatCSV)

	assert.NoError(t, err)
	assert.Equal(t, "text/csv", out.ContentType)
	assert.Equal(t, "officer-verification-report.csv", out.Filename)
	assert.True(t, bytes.HasPrefix(out.Data, []byte{0xEF, 0xBB, 0xBF}), "CSV should carry a UTF-8 BOM")
	assert.Contains(t, string(out.Data), "Asha Verma")
	assert.Contains(t, string(out.Data), "needs_review")
}

func TestAdmin_ExportOfficers_XLSX(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAdminService(userRepo, new(mocks.MockIssueRepo))

	userRepo.On("ListOfficers", mock.Anything).Return(sampleOfficers(), nil)

	out, err := svc.ExportOfficers(context.Background(), service.ExportFormatXLSX)

	assert.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out.ContentType)
	assert.Equal(t, "officer-verification-report.xlsx", out.Filename)
	// XLSX files are zip archives
	assert.True(t, bytes.HasPrefix(out.Data, []byte("PK")))
}

func TestAdmin_ExportOfficers_UnknownFormat(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAdminService(userRepo, new(mocks.MockIssueRepo))

	userRepo.On("ListOfficers", mock.Anything).Return(sampleOfficers(), nil)

	_, err := svc.ExportOfficers(context.Background(), service.ExportFormat("pdf"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
