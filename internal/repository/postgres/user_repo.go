package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"civicfix/internal/domain"
	"civicfix/internal/port"
)

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (id, name, email, phone, role, preferred_language, password_hash,
		is_verified, department, designation, account_status, document_url,
		ai_score, ai_result, ai_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.Role, user.PreferredLanguage,
		user.PasswordHash, user.IsVerified, user.Department, user.Designation,
		user.AccountStatus, user.DocumentURL, user.AIScore, user.AIResult, user.AIReason,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}
	return &user, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email)
	if err != nil {
		return false, fmt.Errorf("userRepo.ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (r *userRepo) SetOTP(ctx context.Context, email, otp string, expiry time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET otp = $1, otp_expiry = $2, updated_at = NOW() WHERE email = $3",
		otp, expiry, email)
	if err != nil {
		return fmt.Errorf("userRepo.SetOTP: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) ClearOTP(ctx context.Context, id uuid.UUID, markVerified bool) error {
	query := "UPDATE users SET otp = '', otp_expiry = NULL, updated_at = NOW() WHERE id = $1"
	if markVerified {
		query = "UPDATE users SET otp = '', otp_expiry = NULL, is_verified = true, updated_at = NOW() WHERE id = $1"
	}
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("userRepo.ClearOTP: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) ListOfficers(ctx context.Context) ([]domain.User, error) {
	var officers []domain.User
	err := r.db.SelectContext(ctx, &officers,
		"SELECT * FROM users WHERE role = $1 ORDER BY created_at DESC", domain.RoleOfficer)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListOfficers: %w", err)
	}
	return officers, nil
}

func (r *userRepo) SetAccountStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, verified bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET account_status = $1, is_verified = $2, updated_at = NOW()
		 WHERE id = $3 AND role = $4`,
		status, verified, id, domain.RoleOfficer)
	if err != nil {
		return fmt.Errorf("userRepo.SetAccountStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
