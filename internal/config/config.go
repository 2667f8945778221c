// Package config holds server-level configuration. LLM provider
// settings live in the llm package; this covers everything else the
// serve command needs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dohyun/jumble/internal/attempts"
	"github.com/dohyun/jumble/internal/sentencegen"
	"github.com/dohyun/jumble/internal/store"
)

// Mode selects logger and gin behavior.
const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

// Config is the serve-time configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// Mode is "debug" or "release".
	Mode string

	// DBDriver is "sqlite" or "postgres".
	DBDriver string

	// DBDSN is the connection string. For sqlite an empty value
	// falls back to the default XDG path.
	DBDSN string

	// MaxDailyAttempts caps quiz attempts per user per KST day.
	MaxDailyAttempts int

	// SentenceCount is how many sentences a quiz round requests.
	SentenceCount int

	// SessionTTL is how long an idle quiz session survives.
	SessionTTL time.Duration

	// CORSOrigins lists allowed browser origins. Empty means all.
	CORSOrigins []string
}

// Default returns the configuration used when no environment
// variables are set.
func Default() Config {
	return Config{
		Port:             8080,
		Mode:             ModeRelease,
		DBDriver:         "sqlite",
		MaxDailyAttempts: attempts.DefaultMaxDaily,
		SentenceCount:    sentencegen.DefaultSentenceCount,
		SessionTTL:       2 * time.Hour,
	}
}

// FromEnv loads configuration from the environment, reading a .env
// file first if one exists. Environment variables override defaults.
func FromEnv() (Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("JUMBLE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid JUMBLE_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("JUMBLE_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("JUMBLE_DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := os.Getenv("JUMBLE_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("JUMBLE_MAX_DAILY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid JUMBLE_MAX_DAILY_ATTEMPTS %q: %w", v, err)
		}
		cfg.MaxDailyAttempts = n
	}
	if v := os.Getenv("JUMBLE_SENTENCE_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid JUMBLE_SENTENCE_COUNT %q: %w", v, err)
		}
		cfg.SentenceCount = n
	}
	if v := os.Getenv("JUMBLE_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid JUMBLE_SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = d
	}
	if v := os.Getenv("JUMBLE_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCommaList(v)
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration consistency.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", c.Port)
	}
	if c.Mode != ModeDebug && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDebug, ModeRelease, c.Mode)
	}
	switch c.DBDriver {
	case store.DriverSQLite, store.DriverPostgres:
	default:
		return fmt.Errorf("unknown db driver %q", c.DBDriver)
	}
	if c.DBDriver == store.DriverPostgres && c.DBDSN == "" {
		return fmt.Errorf("postgres driver requires JUMBLE_DB_DSN")
	}
	if c.MaxDailyAttempts < 1 {
		return fmt.Errorf("max daily attempts must be positive, got %d", c.MaxDailyAttempts)
	}
	if c.SentenceCount < 1 {
		return fmt.Errorf("sentence count must be positive, got %d", c.SentenceCount)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
