package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CookieDefaults(t *testing.T) {
	t.Setenv("COOKIE_SAMESITE", "")
	t.Setenv("DEV_COOKIE_SECURE", "")
	t.Setenv("PROD_COOKIE_SECURE", "")

	t.Run("dev pairs Lax with an insecure cookie", func(t *testing.T) {
		t.Setenv("APP_MODE", "dev")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "Lax", cfg.Cookie.SameSite)
		assert.False(t, cfg.Cookie.Secure)
	})

	t.Run("prod pairs None with a secure cookie", func(t *testing.T) {
		t.Setenv("APP_MODE", "prod")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "None", cfg.Cookie.SameSite)
		assert.True(t, cfg.Cookie.Secure)
	})
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	assert.Error(t, err)
}
