package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"contact-form-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEnv(t *testing.T) {
	t.Run("parses comments and quotes", func(t *testing.T) {
		path := writeEnvFile(t, `# SMTP settings
CF_TEST_HOST=smtp.example.com
CF_TEST_NAME="Website Contact"
CF_TEST_PASS='s3cr#t'

CF_TEST_EMPTY=
`)
		env, err := config.LoadEnv(path)
		require.NoError(t, err)

		assert.Equal(t, "smtp.example.com", env["CF_TEST_HOST"])
		assert.Equal(t, "Website Contact", env["CF_TEST_NAME"])
		assert.Equal(t, "s3cr#t", env["CF_TEST_PASS"])
		assert.Equal(t, "", env["CF_TEST_EMPTY"])
	})

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv("CF_TEST_OVERRIDE", "from-process")
		path := writeEnvFile(t, "CF_TEST_OVERRIDE=from-file\n")

		env, err := config.LoadEnv(path)
		require.NoError(t, err)
		assert.Equal(t, "from-process", env["CF_TEST_OVERRIDE"])
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		t.Setenv("CF_TEST_ONLY_PROCESS", "yes")

		env, err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "yes", env["CF_TEST_ONLY_PROCESS"])
	})

	t.Run("does not touch the process environment", func(t *testing.T) {
		path := writeEnvFile(t, "CF_TEST_FILE_ONLY=1\n")

		_, err := config.LoadEnv(path)
		require.NoError(t, err)

		_, set := os.LookupEnv("CF_TEST_FILE_ONLY")
		assert.False(t, set)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(config.Env{})
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "admin@example.com", cfg.ContactEmailTo)
		assert.Equal(t, "inputForm.html", cfg.ContactFormURL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
		assert.Equal(t, 5, cfg.RateLimitContactThreshold)
		assert.Empty(t, cfg.AllowedOrigins)
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg, err := config.LoadConfig(config.Env{
			"PORT":                         "9090",
			"CONTACT_EMAIL_TO":             "owner@example.com",
			"LOG_FORMAT":                   "TEXT",
			"RATE_LIMIT_CONTACT_THRESHOLD": "not-a-number",
			"ALLOWED_ORIGINS":              "https://a.example.com, ,https://b.example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "owner@example.com", cfg.ContactEmailTo)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, 5, cfg.RateLimitContactThreshold)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	})

	t.Run("invalid port", func(t *testing.T) {
		_, err := config.LoadConfig(config.Env{"PORT": "http"})
		assert.Error(t, err)
	})
}
