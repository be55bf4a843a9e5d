package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"civicfix/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetOTP(ctx context.Context, email, otp string, expiry time.Time) error
	ClearOTP(ctx context.Context, id uuid.UUID, markVerified bool) error
	ListOfficers(ctx context.Context) ([]domain.User, error)
	SetAccountStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, verified bool) error
}

// IssueRepository defines the contract for issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id int64) (*domain.Issue, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Issue, error)
	ListByDepartment(ctx context.Context, department string, officerID uuid.UUID) ([]domain.Issue, error)
	ListAll(ctx context.Context) ([]domain.Issue, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus, officerID uuid.UUID) (*domain.Issue, error)
}
