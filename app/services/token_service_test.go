// Package services provides technical concerns like session token handling
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTokenService(t *testing.T, ttl time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(ttl, "test-issuer", "test-audience", "test-secret-key-for-jwt-signing-32-chars")
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid configuration",
			secretKey:   "test-secret-key-for-jwt-signing-32-chars",
			expectError: false,
		},
		{
			name:        "missing secret key",
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTokenService(30*time.Minute, "test-issuer", "test-audience", tt.secretKey)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestGenerateSessionToken(t *testing.T) {
	svc := createTestTokenService(t, 30*time.Minute)

	token, expiresIn, err := svc.GenerateSessionToken(100000001, "C12345678")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int((30 * time.Minute).Seconds()), expiresIn)
}

func TestValidateSessionToken(t *testing.T) {
	svc := createTestTokenService(t, 30*time.Minute)

	token, _, err := svc.GenerateSessionToken(100000001, "C12345678")
	require.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, 100000001, claims.AccountNumber)
	assert.Equal(t, "C12345678", claims.CustomerID)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateSessionTokenRejectsGarbage(t *testing.T) {
	svc := createTestTokenService(t, 30*time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestValidateSessionTokenRejectsWrongKey(t *testing.T) {
	svc := createTestTokenService(t, 30*time.Minute)
	other, err := NewTokenService(30*time.Minute, "test-issuer", "test-audience", "a-completely-different-secret-key-here")
	require.NoError(t, err)

	token, _, err := svc.GenerateSessionToken(100000001, "C12345678")
	require.NoError(t, err)

	_, err = other.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateSessionTokenExpired(t *testing.T) {
	svc := createTestTokenService(t, -time.Minute)

	token, _, err := svc.GenerateSessionToken(100000001, "C12345678")
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc := createTestTokenService(t, 30*time.Minute)

	first, _, err := svc.GenerateSessionToken(100000001, "C12345678")
	require.NoError(t, err)
	second, _, err := svc.GenerateSessionToken(100000001, "C12345678")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
