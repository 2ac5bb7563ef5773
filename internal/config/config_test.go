package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Environment:        "development",
		JWTSecret:          "secret",
		AccessTokenMinutes: 60,
		RefreshTokenDays:   7,
		DatabaseName:       "staff_backoffice",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validate(validConfig()))
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.JWTSecret = defaultJWTSecret

		err := validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET must be set in production")
	})

	t.Run("non-positive access lifetime", func(t *testing.T) {
		cfg := validConfig()
		cfg.AccessTokenMinutes = 0
		assert.Error(t, validate(cfg))
	})

	t.Run("missing database name", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseName = ""
		assert.Error(t, validate(cfg))
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("ACCESS_TOKEN_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.AccessTokenMinutes)
	assert.Equal(t, "staff-backoffice-backend", cfg.JWTIssuer)
	assert.Equal(t, "staff-backoffice-admin", cfg.JWTAudience)
	assert.Contains(t, cfg.DatabaseURL, "staff_backoffice")
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestBuildDatabaseURL(t *testing.T) {
	cfg := &Config{
		DatabaseUser:     "u",
		DatabasePassword: "p",
		DatabaseHost:     "db",
		DatabasePort:     "5433",
		DatabaseName:     "staff",
		DatabaseSSLMode:  "require",
	}
	assert.Equal(t, "postgres://u:p@db:5433/staff?sslmode=require", buildDatabaseURL(cfg))
}
