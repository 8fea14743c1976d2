package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "gatherly")

	token, err := manager.GenerateToken(42, "user@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "gatherly", claims["iss"])
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", "gatherly")
	other := NewTokenManager("other-secret", "gatherly")

	token, err := manager.GenerateToken(1, "user@example.com", "user")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", "gatherly")

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
