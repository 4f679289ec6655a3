package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"orders-api/models"
	"orders-api/repositories"
	"orders-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type failingUserRepo struct {
	repositories.UserRepository
	err error
}

func (f failingUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, f.err
}

func (f failingUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return nil, f.err
}

func newAuthFixture(t *testing.T, now time.Time) (*AuthService, *repositories.MemoryUserRepository, *utils.TokenManager, *models.User) {
	t.Helper()

	repo := repositories.NewMemoryUserRepository()
	tokens := utils.NewTokenManager(testSecret, 30*time.Minute, "orders-api")
	tokens.SetClock(func() time.Time { return now })

	user, err := NewUserService(repo).CreateUser(context.Background(), models.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	return NewAuthService(repo, tokens), repo, tokens, user
}

func TestLoginIssuesThirtyMinuteToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, tokens, user := newAuthFixture(t, now)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Success login!", resp.Message)

	claims, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, user.ID, claims.UserID())
	assert.True(t, now.Equal(claims.IssuedAt.Time))
	assert.True(t, now.Add(30*time.Minute).Equal(claims.ExpiresAt.Time))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t, time.Now())

	_, unknown := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	_, mismatch := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "wrong"})

	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.ErrorIs(t, mismatch, ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), mismatch.Error())
}

func TestLoginStoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	tokens := utils.NewTokenManager(testSecret, 30*time.Minute, "orders-api")
	svc := NewAuthService(failingUserRepo{err: boom}, tokens)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	now := time.Now()
	svc, repo, tokens, user := newAuthFixture(t, now)

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	principal, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.User.ID)
	assert.Equal(t, user.ID, principal.Claims.UserID())

	t.Run("expired", func(t *testing.T) {
		tokens.SetClock(func() time.Time { return now.Add(31 * time.Minute) })
		defer tokens.SetClock(func() time.Time { return now })

		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, utils.ErrTokenExpired)
	})

	t.Run("subject deleted", func(t *testing.T) {
		require.NoError(t, repo.Delete(context.Background(), user.ID))

		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrIdentityNotFound)
	})
}

func TestAuthenticateStoreFailure(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret, 30*time.Minute, "orders-api")
	token, err := tokens.Generate(&models.User{ID: "u-1", Email: "ana@example.com"})
	require.NoError(t, err)

	svc := NewAuthService(failingUserRepo{err: errors.New("timeout")}, tokens)
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrAuthBackend)
}
