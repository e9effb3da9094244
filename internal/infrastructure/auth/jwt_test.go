package auth

import (
	"testing"
	"time"

	"github.com/blindtest/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(cfg config.JWTConfig) *JWTService {
	if cfg.Secret == "" {
		cfg.Secret = "test-secret-key-at-least-32-chars-long"
	}
	if cfg.AccessTokenExpiration == 0 {
		cfg.AccessTokenExpiration = 15 * time.Minute
	}
	if cfg.RefreshTokenExpiration == 0 {
		cfg.RefreshTokenExpiration = 24 * time.Hour
	}
	if cfg.MaxRefreshCount == 0 {
		cfg.MaxRefreshCount = 5
	}
	cfg.Issuer = "blindtest-test"
	return NewJWTService(cfg)
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := newTestService(config.JWTConfig{})
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "agent@example.com",
		Role:   "agent",
	})
	require.NoError(t, err)

	t.Run("access token carries identity claims", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "agent@example.com", claims.Email)
		assert.Equal(t, "agent", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("refresh token carries minimal claims", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Empty(t, claims.Email)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Equal(t, 0, claims.RefreshCount)
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("pair is a Bearer pair", func(t *testing.T) {
		assert.Equal(t, "Bearer", pair.TokenType)
		assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
	})
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		svc := newTestService(config.JWTConfig{})
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		svc := newTestService(config.JWTConfig{})
		other := newTestService(config.JWTConfig{Secret: "another-secret-key-also-32-chars-xx"})

		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "x@y.fr"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		svc := newTestService(config.JWTConfig{AccessTokenExpiration: -time.Minute})
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "x@y.fr"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestService(config.JWTConfig{MaxRefreshCount: 2})
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "agent@example.com", Role: "agent"})
	require.NoError(t, err)

	t.Run("rotates the pair and applies the current role", func(t *testing.T) {
		refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, "agent@example.com", "admin")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)

		refreshClaims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("enforces the refresh ceiling", func(t *testing.T) {
		current := pair
		var err error
		for i := 0; i < 2; i++ {
			current, err = svc.RefreshTokenPair(current.RefreshToken, "agent@example.com", "agent")
			require.NoError(t, err)
		}

		_, err = svc.RefreshTokenPair(current.RefreshToken, "agent@example.com", "agent")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("rejects an access token as refresh token", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "agent@example.com", "agent")
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}
