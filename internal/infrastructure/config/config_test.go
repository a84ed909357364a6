package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, filepath.Join("data", "users.json"), cfg.Store.UsersPath())
	assert.Equal(t, filepath.Join("data", "admin.json"), cfg.Store.AdminsPath())
	assert.Equal(t, filepath.Join("data", "designs.json"), cfg.Store.DesignsPath())
	assert.Equal(t, PasswordSchemePlain, cfg.Security.PasswordScheme)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddr())
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DIR", "/srv/reactiverse")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/reactiverse", cfg.Store.Dir)
	assert.Equal(t, PasswordSchemeBcrypt, cfg.Security.PasswordScheme)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.GetAddr())
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown password scheme", env: map[string]string{"PASSWORD_SCHEME": "md5"}},
		{name: "unknown cache driver", env: map[string]string{"CACHE_DRIVER": "memcached"}},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "default secret in production", env: map[string]string{"APP_ENVIRONMENT": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
