package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BACKEND_TIMEOUT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Empty(t, cfg.Redis.URL)
	assert.Nil(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Second, cfg.UI.CreateRedirectDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.EditRedirectDelay)
	assert.Equal(t, 3*time.Second, cfg.UI.ToastDuration)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("FORM_RATE_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10, cfg.Server.FormRateBurst)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "3000", FormRateLimit: 1, FormRateBurst: 1},
			Backend: BackendConfig{URL: "http://localhost:8080", Timeout: time.Second},
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects relative backend url", func(t *testing.T) {
		cfg := valid()
		cfg.Backend.URL = "/api"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		cfg := valid()
		cfg.Backend.URL = "ftp://example.com"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects zero timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Backend.Timeout = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects empty port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""
		assert.Error(t, cfg.Validate())
	})
}
