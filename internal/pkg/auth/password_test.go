package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookmarket-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "bookmarket-test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough-123456",
			AccessTokenExpiry: 2 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, pm.VerifyPassword("correct horse battery staple", hash))
	assert.Error(t, pm.VerifyPassword("wrong password", hash))
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	_, err := pm.HashPassword("short")
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("1234567"))
	assert.NoError(t, ValidatePassword("12345678"))

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidatePassword(string(long)))
}
