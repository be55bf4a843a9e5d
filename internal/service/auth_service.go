package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/port"
)

const (
	otpLength = 6
	otpTTL    = 5 * time.Minute
)

// Claims represents the JWT claims carried by a CivicFix session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID     uuid.UUID       `json:"user_id"`
	Email      string          `json:"email"`
	Role       domain.UserRole `json:"role"`
	Department string          `json:"department,omitempty"`
	Language   string          `json:"language,omitempty"`
}

// SignupInput is the DTO for citizen signup requests.
type SignupInput struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone" binding:"required"`
	PreferredLanguage string `json:"preferred_language"`
}

// LoginOutput contains the session issued after a verified login.
type LoginOutput struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// AuthService defines the authentication contract: citizen signup, OTP
// issue/verify for passwordless login, and the password-based admin login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (*LoginOutput, error)
	AdminLogin(ctx context.Context, email, password string) (*LoginOutput, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo    port.UserRepository
	emailSender port.EmailSender
	jwtCfg      config.JWTConfig
	adminCfg    config.AdminConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	emailSender port.EmailSender,
	jwtCfg config.JWTConfig,
	adminCfg config.AdminConfig,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		emailSender: emailSender,
		jwtCfg:      jwtCfg,
		adminCfg:    adminCfg,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.Signup: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateUser
	}

	lang := input.PreferredLanguage
	if lang == "" {
		lang = "en"
	}

	user := &domain.User{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Role:              domain.RoleCitizen,
		PreferredLanguage: lang,
		AccountStatus:     domain.AccountStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) RequestOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generating otp: %w", err)
	}

	if err := s.userRepo.SetOTP(ctx, email, otp, time.Now().Add(otpTTL)); err != nil {
		return err
	}

	if err := s.emailSender.SendOTP(ctx, user.Email, user.Name, otp); err != nil {
		// The OTP is stored; delivery failure should not leak whether
		// the address exists, and dev setups run without email at all.
		log.Printf("WARNING: failed to send OTP email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, email, otp string) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.OTP == "" || user.OTP != otp {
		return nil, domain.ErrInvalidOTP
	}
	if user.OTPExpiry == nil || time.Now().After(*user.OTPExpiry) {
		return nil, domain.ErrOTPExpired
	}

	if err := s.userRepo.ClearOTP(ctx, user.ID, !user.IsVerified); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.OTP = ""

	return s.issueToken(user)
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (*LoginOutput, error) {
	if s.adminCfg.Email == "" || email != s.adminCfg.Email {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminCfg.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.AdminLogin: %w", err)
	}
	if user.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	return s.issueToken(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) issueToken(user *domain.User) (*LoginOutput, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtCfg.AccessExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		Language:   user.PreferredLanguage,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &LoginOutput{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func generateOTP() (string, error) {
	digits := make([]byte, otpLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
