package services

import (
	"context"
	"testing"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/config"
	"anpere-portal/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	hashed, err := password.Hash("super-secret-1")
	require.NoError(t, err)

	user := &models.User{
		Username: "admin",
		Email:    "admin@anpere.ao",
		Password: hashed,
		Role:     "ADMIN",
		IsActive: true,
	}
	require.NoError(t, userRepo.Create(context.Background(), user))

	return NewAuthService(userRepo, tokenRepo, cfg), user
}

func TestLogin(t *testing.T) {
	t.Run("Login_Success", func(t *testing.T) {
		svc, user := newTestAuthService(t)

		result, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "super-secret-1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, user.Username, result.User.Username)
	})

	t.Run("Login_WrongPassword", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Login_UnknownUser", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.Login(context.Background(), &LoginInput{
			Username: "nobody",
			Password: "super-secret-1",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshRotation(t *testing.T) {
	t.Run("Refresh_IssuesNewPair", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		login, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "super-secret-1",
		})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("Refresh_OldTokenRevokedAfterRotation", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		login, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "super-secret-1",
		})
		require.NoError(t, err)

		_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
		require.NoError(t, err)

		// Replaying the consumed token must fail
		_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("Refresh_GarbageToken", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	t.Run("Logout_RevokesToken", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		login, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "super-secret-1",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

		_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("LogoutAll_RevokesEverySession", func(t *testing.T) {
		svc, user := newTestAuthService(t)

		first, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "super-secret-1",
		})
		require.NoError(t, err)

		second, err := svc.Login(context.Background(), &LoginInput{
			Username: "admin",
			Password: "super-secret-1",
		})
		require.NoError(t, err)

		require.NoError(t, svc.LogoutAll(context.Background(), user.ID))

		_, err = svc.RefreshToken(context.Background(), first.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
		_, err = svc.RefreshToken(context.Background(), second.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}
