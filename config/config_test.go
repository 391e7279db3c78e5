package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendFirestore, cfg.StoreBackend)
	assert.Equal(t, 65, cfg.StreakLookbackDays)
	assert.Equal(t, 365, cfg.StreakMaxDays)
	assert.Equal(t, 1, cfg.MinWordCount)
	assert.Equal(t, 7, cfg.MilestoneEvery)
	assert.False(t, cfg.AuthDisabled)
	assert.False(t, cfg.MailgunEnabled())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STREAK_LOOKBACK_DAYS", "400")
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 400, cfg.StreakLookbackDays)
	assert.True(t, cfg.AuthDisabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storyverse.yaml")
	yaml := "store_backend: redis\nredis_addr: cache:6379\nmilestone_every: 30\nmailgun_domain: mg.example\nmailgun_key: key-1\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 30, cfg.MilestoneEvery)
	assert.True(t, cfg.MailgunEnabled())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			StoreBackend:       BackendMemory,
			StreakLookbackDays: 65,
			StreakMaxDays:      365,
			MinWordCount:       1,
			MilestoneEvery:     7,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.StoreBackend = "mongo" }},
		{"zero lookback", func(c *Config) { c.StreakLookbackDays = 0 }},
		{"negative max", func(c *Config) { c.StreakMaxDays = -1 }},
		{"zero threshold", func(c *Config) { c.MinWordCount = 0 }},
		{"zero milestone", func(c *Config) { c.MilestoneEvery = 0 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }},
	}

	ok := valid()
	require.NoError(t, ok.Validate())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}
