package email_test

import (
	"testing"
	"time"

	"contact-form-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := email.ConfigFromEnv(map[string]string{})
		require.NoError(t, err)

		assert.Equal(t, email.SMTPConfig{
			Host:        "smtp.gmail.com",
			Port:        587,
			Encryption:  email.EncryptionTLS,
			FromAddress: "noreply@example.com",
			FromName:    "Website Contact",
			Timeout:     15 * time.Second,
		}, cfg)
		assert.False(t, cfg.HasCredentials())
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg, err := email.ConfigFromEnv(map[string]string{
			"SMTP_HOST":         "mail.example.org",
			"SMTP_PORT":         "2525",
			"SMTP_USERNAME":     "user",
			"SMTP_PASSWORD":     "p@ss",
			"SMTP_ENCRYPTION":   "SSL",
			"MAIL_FROM_ADDRESS": "hello@example.org",
			"MAIL_FROM_NAME":    "Hello",
			"SMTP_TIMEOUT":      "3s",
		})
		require.NoError(t, err)

		assert.Equal(t, "mail.example.org", cfg.Host)
		assert.Equal(t, 2525, cfg.Port)
		assert.Equal(t, email.EncryptionSSL, cfg.Encryption)
		assert.Equal(t, "hello@example.org", cfg.FromAddress)
		assert.Equal(t, "Hello", cfg.FromName)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.True(t, cfg.HasCredentials())
	})

	t.Run("empty values fall back to defaults", func(t *testing.T) {
		cfg, err := email.ConfigFromEnv(map[string]string{
			"SMTP_HOST":       "",
			"SMTP_ENCRYPTION": " ",
			"SMTP_PASSWORD":   "",
		})
		require.NoError(t, err)
		assert.Equal(t, "smtp.gmail.com", cfg.Host)
		assert.Equal(t, email.EncryptionTLS, cfg.Encryption)
		assert.Empty(t, cfg.Password)
	})

	t.Run("unknown encryption means plaintext", func(t *testing.T) {
		cfg, err := email.ConfigFromEnv(map[string]string{"SMTP_ENCRYPTION": "starttls-please"})
		require.NoError(t, err)
		assert.Equal(t, email.EncryptionNone, cfg.Encryption)
	})

	t.Run("invalid port", func(t *testing.T) {
		_, err := email.ConfigFromEnv(map[string]string{"SMTP_PORT": "abc"})
		assert.Error(t, err)
	})
}
