package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "reactiverse-test"}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, expiresIn, err := svc.Issue("user-1", entities.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, entities.RoleUser, claims.Role)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	token, _, err := svc.Issue("admin-1", entities.RoleAdmin)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := testJWTConfig()
		other.Secret = "another-secret"
		_, err := NewTokenService(other).Validate(token)
		assert.ErrorIs(t, err, entities.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenService(testJWTConfig())
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Validate(token)
		assert.ErrorIs(t, err, entities.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.ErrorIs(t, err, entities.ErrUnauthorized)
	})
}

func TestNewPasswordHasher(t *testing.T) {
	plain, err := NewPasswordHasher("plain")
	require.NoError(t, err)
	assert.Equal(t, config.PasswordSchemePlain, plain.Scheme())
	assert.True(t, plain.Compare("secret1", "secret1"))
	assert.False(t, plain.Compare("secret1", "secret2"))

	hashed, err := NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	assert.Equal(t, config.PasswordSchemeBcrypt, hashed.Scheme())

	_, err = NewPasswordHasher("md5")
	assert.Error(t, err)
}
