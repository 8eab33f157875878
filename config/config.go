package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env is a key/value configuration provider. It is built once at startup and
// handed to whoever needs settings; the process environment is never mutated.
type Env map[string]string

type Config struct {
	Port string
	// Contact form
	ContactEmailTo string
	ContactFormURL string
	// Logging
	LogLevel  string
	LogFormat string
	// Redis Configuration (optional, rate limiting falls back to memory)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	// CORS
	AllowedOrigins []string

	// Env is the raw provider, used to resolve the SMTP settings.
	Env Env
}

// LoadEnv reads a .env file (key=value, # comments, optional quotes) and
// overlays the process environment on top. Variables already set in the
// process win over the file. A missing file is not an error.
func LoadEnv(path string) (Env, error) {
	env := Env{}

	if path != "" {
		fileVars, err := godotenv.Read(path)
		switch {
		case err == nil:
			for k, v := range fileVars {
				env[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
			// Silently ignore so the service can run on process env alone.
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && key != "" {
			env[key] = value
		}
	}

	return env, nil
}

// LoadConfig builds the server settings from the provider.
func LoadConfig(env Env) (*Config, error) {
	cfg := &Config{
		Port:           env.Get("PORT", "8080"),
		ContactEmailTo: env.Get("CONTACT_EMAIL_TO", "admin@example.com"),
		ContactFormURL: env.Get("CONTACT_FORM_URL", "inputForm.html"),
		LogLevel:       strings.ToLower(env.Get("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(env.Get("LOG_FORMAT", "json")),
		// Redis Configuration
		RedisURL:      env.Get("REDIS_URL", ""),
		RedisPassword: env.Get("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    env.GetInt("RATE_LIMIT_WINDOW_SECONDS", 60),   // 1 minute window
		RateLimitContactThreshold: env.GetInt("RATE_LIMIT_CONTACT_THRESHOLD", 5), // 5 submissions per window
		AllowedOrigins:            splitList(env.Get("ALLOWED_ORIGINS", "")),
		Env:                       env,
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("config: PORT must be numeric, got %q", cfg.Port)
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Get returns the value for key, or fallback when it is missing or empty.
func (e Env) Get(key, fallback string) string {
	if value, exists := e[key]; exists && value != "" {
		return value
	}
	return fallback
}

// GetInt returns an integer value or fallback if not set/invalid
func (e Env) GetInt(key string, fallback int) int {
	if value, exists := e[key]; exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
