package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmarket-backend/internal/security"
)

const testSecret = "test-secret-key-at-least-32-characters"

func TestTokenRoundTrip(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)

	token, err := manager.GenerateAccessToken("user-1", "COMPANY", "company-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "COMPANY", claims.Role)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := security.NewTokenManager(testSecret, time.Hour).GenerateAccessToken("user-1", "USER", "")
	require.NoError(t, err)

	other := security.NewTokenManager("another-secret-key-also-32-characters!", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := security.NewTokenManager(testSecret, -time.Minute)
	token, err := manager.GenerateAccessToken("user-1", "USER", "")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)
	_, err := manager.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
