// Package config loads server settings from .env, an optional config.yaml
// and the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendMemory    = "memory"
)

type Config struct {
	Port         string `mapstructure:"port"`
	StoreBackend string `mapstructure:"store_backend"`

	FirebaseProjectID       string `mapstructure:"firebase_project_id"`
	FirebaseCredentialsFile string `mapstructure:"firebase_credentials_file"`

	// DatabaseURL wins over the CloudSQL settings when both are set.
	DatabaseURL            string `mapstructure:"database_url"`
	CloudSQLConnectionName string `mapstructure:"cloudsql_connection_name"`
	CloudSQLUser           string `mapstructure:"cloudsql_user"`
	CloudSQLPassword       string `mapstructure:"cloudsql_password"`
	CloudSQLDatabaseName   string `mapstructure:"cloudsql_database_name"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	Timezone string `mapstructure:"timezone"`

	// StreakLookbackDays bounds the fetch window of the current streak and
	// StreakMaxDays bounds the walk back. The defaults (65 and 365) disagree
	// on purpose; a streak longer than the lookback window is truncated.
	StreakLookbackDays int `mapstructure:"streak_lookback_days"`
	StreakMaxDays      int `mapstructure:"streak_max_days"`
	MinWordCount       int `mapstructure:"min_word_count"`
	MilestoneEvery     int `mapstructure:"milestone_every"`

	MailgunDomain   string `mapstructure:"mailgun_domain"`
	MailgunKey      string `mapstructure:"mailgun_key"`
	MailgunSender   string `mapstructure:"mailgun_sender"`
	MailgunTemplate string `mapstructure:"mailgun_template"`

	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	AuthDisabled       bool   `mapstructure:"auth_disabled"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("store_backend", BackendFirestore)
	v.SetDefault("firebase_project_id", "")
	v.SetDefault("firebase_credentials_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("cloudsql_connection_name", "")
	v.SetDefault("cloudsql_user", "")
	v.SetDefault("cloudsql_password", "")
	v.SetDefault("cloudsql_database_name", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("timezone", "Local")
	v.SetDefault("streak_lookback_days", 65)
	v.SetDefault("streak_max_days", 365)
	v.SetDefault("min_word_count", 1)
	v.SetDefault("milestone_every", 7)
	v.SetDefault("mailgun_domain", "")
	v.SetDefault("mailgun_key", "")
	v.SetDefault("mailgun_sender", "Team Storyverse <hello@storyverse.app>")
	v.SetDefault("mailgun_template", "")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("auth_disabled", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load reads .env (if present), then configFile or config.yaml from ./config
// or the working directory (if present), then the environment.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("File .env not found!")
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFirestore, BackendPostgres, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.StoreBackend)
	}

	bounds := []struct {
		name string
		val  int
	}{
		{"streak_lookback_days", c.StreakLookbackDays},
		{"streak_max_days", c.StreakMaxDays},
		{"min_word_count", c.MinWordCount},
		{"milestone_every", c.MilestoneEvery},
	}
	for _, b := range bounds {
		if b.val < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, b.name, b.val)
		}
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Location resolves Timezone. Empty or "Local" is the server's zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// AllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// MailgunEnabled reports whether milestone e-mails can be sent.
func (c *Config) MailgunEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunKey != ""
}
