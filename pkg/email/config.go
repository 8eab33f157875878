package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Encryption selects how the SMTP connection is secured.
type Encryption string

const (
	EncryptionNone Encryption = "none"
	EncryptionTLS  Encryption = "tls" // STARTTLS
	EncryptionSSL  Encryption = "ssl" // implicit TLS
)

const (
	defaultPort  = 587
	portSTARTTLS = 587
	portSMTPS    = 465
)

// SMTPConfig holds the relay settings. Username and Password have no default;
// their absence is reported by the Dispatcher, not at load time.
type SMTPConfig struct {
	Host        string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port        int           `env:"SMTP_PORT" envDefault:"587"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SMTP_PASSWORD"`
	Encryption  Encryption    `env:"SMTP_ENCRYPTION" envDefault:"tls"`
	FromAddress string        `env:"MAIL_FROM_ADDRESS" envDefault:"noreply@example.com"`
	FromName    string        `env:"MAIL_FROM_NAME" envDefault:"Website Contact"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`
}

// ConfigFromEnv resolves an SMTPConfig from a key/value provider. Keys that are
// missing or empty fall back to their defaults.
func ConfigFromEnv(vars map[string]string) (SMTPConfig, error) {
	environment := make(map[string]string, len(vars))
	for k, v := range vars {
		if strings.TrimSpace(v) != "" {
			environment[k] = v
		}
	}

	var cfg SMTPConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return SMTPConfig{}, fmt.Errorf("email: parse smtp config: %w", err)
	}
	cfg.Encryption = cfg.Encryption.normalize()
	return cfg, nil
}

// HasCredentials reports whether both username and password are set.
func (c SMTPConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// effectivePort applies the port switch for the encryption mode. An explicitly
// configured non-standard port is always kept.
func (c SMTPConfig) effectivePort() int {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	switch c.Encryption.normalize() {
	case EncryptionSSL:
		if port == portSTARTTLS {
			port = portSMTPS
		}
	case EncryptionTLS:
		if port == portSMTPS {
			port = portSTARTTLS
		}
	}
	return port
}

// normalize lowercases the mode. Unknown modes and the empty string mean
// plaintext.
func (e Encryption) normalize() Encryption {
	switch mode := Encryption(strings.ToLower(strings.TrimSpace(string(e)))); mode {
	case EncryptionTLS, EncryptionSSL:
		return mode
	default:
		return EncryptionNone
	}
}
