package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/service"
	"civicfix/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:       "test-secret-key-for-unit-tests",
		AccessExpiry: time.Hour,
		Issuer:       "civicfix-test",
	}
}

func newAuthService(userRepo *mocks.MockUserRepo, sender *mocks.MockEmailSender, admin config.AdminConfig) service.AuthService {
	return service.NewAuthService(userRepo, sender, testJWTConfig(), admin)
}

func TestAuth_Signup_CreatesCitizen(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	userRepo.On("ExistsByEmail", mock.Anything, "ravi@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Signup(context.Background(), service.SignupInput{
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Phone: "+91-9000000001",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, user.Role)
	assert.Equal(t, "en", user.PreferredLanguage)
	assert.Equal(t, domain.AccountStatusActive, user.AccountStatus)
}

func TestAuth_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	userRepo.On("ExistsByEmail", mock.Anything, "ravi@example.com").Return(true, nil)

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Phone: "+91-9000000001",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_RequestOTP_StoresAndSends(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	user := &domain.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com"}
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	var storedOTP string
	userRepo.On("SetOTP", mock.Anything, user.Email, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { storedOTP = args.String(2) }).
		Return(nil)
	sender.On("SendOTP", mock.Anything, user.Email, user.Name, mock.AnythingOfType("string")).Return(nil)

	err := svc.RequestOTP(context.Background(), user.Email)

	assert.NoError(t, err)
	assert.Len(t, storedOTP, 6)
	sender.AssertExpectations(t)
}

func TestAuth_RequestOTP_EmailFailureStillSucceeds(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	user := &domain.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com"}
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("SetOTP", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(nil)
	sender.On("SendOTP", mock.Anything, user.Email, user.Name, mock.Anything).
		Return(assert.AnError)

	err := svc.RequestOTP(context.Background(), user.Email)

	assert.NoError(t, err)
}

func TestAuth_VerifyOTP_IssuesToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	expiry := time.Now().Add(2 * time.Minute)
	user := &domain.User{
		ID:         uuid.New(),
		Name:       "Ravi",
		Email:      "ravi@example.com",
		Role:       domain.RoleCitizen,
		OTP:        "482913",
		OTPExpiry:  &expiry,
		IsVerified: false,
	}
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("ClearOTP", mock.Anything, user.ID, true).Return(nil)

	out, err := svc.VerifyOTP(context.Background(), user.Email, "482913")

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.True(t, out.User.IsVerified)

	claims, err := svc.ValidateToken(out.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestAuth_VerifyOTP_WrongCode(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	expiry := time.Now().Add(2 * time.Minute)
	user := &domain.User{ID: uuid.New(), Email: "ravi@example.com", OTP: "482913", OTPExpiry: &expiry}
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.VerifyOTP(context.Background(), user.Email, "000000")

	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	userRepo.AssertNotCalled(t, "ClearOTP", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_VerifyOTP_Expired(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := newAuthService(userRepo, sender, config.AdminConfig{})

	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{ID: uuid.New(), Email: "ravi@example.com", OTP: "482913", OTPExpiry: &expiry}
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.VerifyOTP(context.Background(), user.Email, "482913")

	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestAuth_AdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)
	adminCfg := config.AdminConfig{Email: "admin@civicfix.gov", PasswordHash: string(hash)}

	admin := &domain.User{ID: uuid.New(), Email: adminCfg.Email, Role: domain.RoleAdmin}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := newAuthService(userRepo, new(mocks.MockEmailSender), adminCfg)
		userRepo.On("GetByEmail", mock.Anything, adminCfg.Email).Return(admin, nil)

		out, err := svc.AdminLogin(context.Background(), adminCfg.Email, "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := newAuthService(userRepo, new(mocks.MockEmailSender), adminCfg)

		_, err := svc.AdminLogin(context.Background(), adminCfg.Email, "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := newAuthService(userRepo, new(mocks.MockEmailSender), adminCfg)

		_, err := svc.AdminLogin(context.Background(), "nobody@civicfix.gov", "s3cret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("account without admin role", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := newAuthService(userRepo, new(mocks.MockEmailSender), adminCfg)
		citizen := &domain.User{ID: uuid.New(), Email: adminCfg.Email, Role: domain.RoleCitizen}
		userRepo.On("GetByEmail", mock.Anything, adminCfg.Email).Return(citizen, nil)

		_, err := svc.AdminLogin(context.Background(), adminCfg.Email, "s3cret")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestAuth_ValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(new(mocks.MockUserRepo), new(mocks.MockEmailSender), config.AdminConfig{})

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
