package jwt

import (
	"testing"
	"time"

	"github.com/deringirish/PHMS/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string, access time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  access,
		RefreshExpiry: time.Hour,
	})
}

func TestJWTService(t *testing.T) {
	adminID := uuid.New()

	t.Run("Access Token Round Trip", func(t *testing.T) {
		svc := newTestService("secret", time.Minute)
		token, tokenID, err := svc.GenerateAccessToken(adminID, "drmeera")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, adminID, claims.AdminID)
		assert.Equal(t, "drmeera", claims.UserID)
		assert.Equal(t, AccessToken, claims.TokenType)
		assert.Equal(t, tokenID, claims.TokenID)
	})

	t.Run("Refresh Token Type", func(t *testing.T) {
		svc := newTestService("secret", time.Minute)
		token, _, err := svc.GenerateRefreshToken(adminID, "drmeera")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, RefreshToken, claims.TokenType)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, _, err := newTestService("secret", time.Minute).GenerateAccessToken(adminID, "drmeera")
		require.NoError(t, err)

		_, err = newTestService("other", time.Minute).ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		svc := newTestService("secret", -time.Minute)
		token, _, err := svc.GenerateAccessToken(adminID, "drmeera")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
