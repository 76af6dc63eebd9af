package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateToken(42, "ada@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.IsSeller)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	jm := NewJWTManager(testConfig())

	token, err := jm.GenerateToken(42, "ada@example.com", false)
	require.NoError(t, err)

	_, err = jm.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = jm.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	jm := NewJWTManager(testConfig())
	token, err := jm.GenerateToken(1, "a@b.c", false)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-completely-different-secret-key-7890123456"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractTokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("abc.def.ghi")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic dXNlcjpwYXNz")
	assert.Error(t, err)
}
