// Package config loads service configuration from defaults, an optional
// config.yaml and DATECALC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// DATECALC_HTTP_SERVER_PORT=9090.
const EnvPrefix = "DATECALC"

// Session backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string // console or json
}

type SessionConfig struct {
	Backend       string
	SQLitePath    string
	Capacity      int
	TTL           time.Duration
	MaxKeys       int
	PurgeInterval time.Duration
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Burst          int
}

// Load reads configuration. An empty path searches for config.yaml in
// ./config, . and /etc/datecalc/; a missing file is not an error then. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/datecalc/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = v.GetString("environment.name")

	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.HTTPServer.CORSOrigins = splitList(v.GetStringSlice("http_server.cors_origins"))

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")

	cfg.Session.Backend = v.GetString("session.backend")
	cfg.Session.SQLitePath = v.GetString("session.sqlite_path")
	cfg.Session.Capacity = v.GetInt("session.capacity")
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Session.MaxKeys = v.GetInt("session.max_keys")
	cfg.Session.PurgeInterval = v.GetDuration("session.purge_interval")

	cfg.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = v.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port: %d out of range", c.HTTPServer.Port)
	}
	switch c.Session.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("session.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("session.backend: unknown backend %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMin <= 0 {
		return fmt.Errorf("rate_limit.requests_per_min must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.shutdown_timeout", "30s")
	v.SetDefault("http_server.cors_origins", []string{"*"})
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("session.backend", BackendMemory)
	v.SetDefault("session.sqlite_path", "./data/datecalc.db")
	v.SetDefault("session.capacity", 10000)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.max_keys", 256)
	v.SetDefault("session.purge_interval", "10m")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_min", 600)
	v.SetDefault("rate_limit.burst", 50)
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
