package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, 10, cfg.MaxDailyAttempts)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JUMBLE_PORT", "9000")
	t.Setenv("JUMBLE_MODE", "debug")
	t.Setenv("JUMBLE_MAX_DAILY_ATTEMPTS", "3")
	t.Setenv("JUMBLE_SENTENCE_COUNT", "7")
	t.Setenv("JUMBLE_SESSION_TTL", "30m")
	t.Setenv("JUMBLE_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, ModeDebug, cfg.Mode)
	require.Equal(t, 3, cfg.MaxDailyAttempts)
	require.Equal(t, 7, cfg.SentenceCount)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_BadValues(t *testing.T) {
	t.Setenv("JUMBLE_PORT", "not-a-port")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"bad mode", func(c *Config) { c.Mode = "verbose" }},
		{"bad driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.DBDriver = "postgres"; c.DBDSN = "" }},
		{"zero attempts", func(c *Config) { c.MaxDailyAttempts = 0 }},
		{"zero sentences", func(c *Config) { c.SentenceCount = 0 }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
