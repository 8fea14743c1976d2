package service

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/email"
	"github.com/gatherly/gatherly-backend/pkg/jwt"
)

func newAuthService(env *testEnv) *AuthService {
	logger := zap.NewNop()
	emailService := email.NewEmailService("", "noreply@gatherly.test", "Gatherly", "http://localhost:5173", logger)
	tokenManager := jwt.NewTokenManager("test-secret", "gatherly")
	return NewAuthService(env.userRepo, emailService, tokenManager, logger)
}

func TestRegister_CreatesActiveUserWithToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	resp, err := auth.Register(models.RegisterRequest{
		Email:     gofakeit.Email(),
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsActive)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.NotEqual(t, "secret123", resp.User.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	emailAddr := gofakeit.Email()

	_, err := auth.Register(models.RegisterRequest{
		Email: emailAddr, Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)

	_, err = auth.Register(models.RegisterRequest{
		Email: emailAddr, Password: "other456", FirstName: "Grace", LastName: "Hopper",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	emailAddr := gofakeit.Email()

	_, err := auth.Register(models.RegisterRequest{
		Email: emailAddr, Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)

	_, err = auth.Login(models.LoginRequest{Email: emailAddr, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccountRefused(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	emailAddr := gofakeit.Email()

	resp, err := auth.Register(models.RegisterRequest{
		Email: emailAddr, Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err = auth.Login(models.LoginRequest{Email: emailAddr, Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RecordsLastLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	emailAddr := gofakeit.Email()

	_, err := auth.Register(models.RegisterRequest{
		Email: emailAddr, Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)

	resp, err := auth.Login(models.LoginRequest{Email: emailAddr, Password: "secret123"})
	require.NoError(t, err)

	user, err := env.userRepo.GetByID(resp.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
}

func TestGoogleAuth_CreatesFederatedAccount(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	resp, err := auth.GoogleAuth(models.GoogleAuthRequest{
		GoogleID:  "google-123",
		Email:     gofakeit.Email(),
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsVerified)
	assert.Empty(t, resp.User.Password)
}

func TestGoogleAuth_LinksExistingAccountByEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	emailAddr := gofakeit.Email()

	registered, err := auth.Register(models.RegisterRequest{
		Email: emailAddr, Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)

	resp, err := auth.GoogleAuth(models.GoogleAuthRequest{
		GoogleID: "google-456", Email: emailAddr, FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
