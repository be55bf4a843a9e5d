package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"civicfix/internal/domain"
	"civicfix/internal/port"
)

type issueRepo struct {
	db *sqlx.DB
}

// NewIssueRepo creates a new PostgreSQL-backed IssueRepository.
func NewIssueRepo(db *sqlx.DB) port.IssueRepository {
	return &issueRepo{db: db}
}

func (r *issueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	now := time.Now().UTC()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	if issue.ReportedAt.IsZero() {
		issue.ReportedAt = now
	}
	if issue.Status == "" {
		issue.Status = domain.IssueStatusReported
	}

	query := `INSERT INTO issues (citizen_id, image_url, voice_text, language, category,
		latitude, longitude, status, ai_status, ai_confidence, ai_reason,
		reported_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		issue.CitizenID, issue.ImageURL, issue.VoiceText, issue.Language, issue.Category,
		issue.Latitude, issue.Longitude, issue.Status, issue.AIStatus, issue.AIConfidence,
		issue.AIReason, issue.ReportedAt, issue.CreatedAt, issue.UpdatedAt).Scan(&issue.ID)
	if err != nil {
		return fmt.Errorf("issueRepo.Create: %w", err)
	}
	return nil
}

func (r *issueRepo) GetByID(ctx context.Context, id int64) (*domain.Issue, error) {
	var issue domain.Issue
	err := r.db.GetContext(ctx, &issue, "SELECT * FROM issues WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("issueRepo.GetByID: %w", err)
	}
	return &issue, nil
}

func (r *issueRepo) ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Issue, error) {
	var issues []domain.Issue
	err := r.db.SelectContext(ctx, &issues,
		"SELECT * FROM issues WHERE citizen_id = $1 ORDER BY created_at DESC", citizenID)
	if err != nil {
		return nil, fmt.Errorf("issueRepo.ListByCitizen: %w", err)
	}
	return issues, nil
}

func (r *issueRepo) ListByDepartment(ctx context.Context, department string, officerID uuid.UUID) ([]domain.Issue, error) {
	var issues []domain.Issue
	err := r.db.SelectContext(ctx, &issues,
		`SELECT * FROM issues
		 WHERE LOWER(category) = LOWER($1) OR assigned_officer_id = $2
		 ORDER BY created_at DESC`,
		department, officerID)
	if err != nil {
		return nil, fmt.Errorf("issueRepo.ListByDepartment: %w", err)
	}
	return issues, nil
}

func (r *issueRepo) ListAll(ctx context.Context) ([]domain.Issue, error) {
	var issues []domain.Issue
	err := r.db.SelectContext(ctx, &issues, "SELECT * FROM issues ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("issueRepo.ListAll: %w", err)
	}
	return issues, nil
}

func (r *issueRepo) UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus, officerID uuid.UUID) (*domain.Issue, error) {
	var issue domain.Issue
	err := r.db.GetContext(ctx, &issue,
		`UPDATE issues SET status = $1, assigned_officer_id = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING *`,
		status, officerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("issueRepo.UpdateStatus: %w", err)
	}
	return &issue, nil
}
