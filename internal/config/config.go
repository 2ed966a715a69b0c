// Package config loads runtime settings from defaults, an optional YAML file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"fiduciary-books/internal/core"
)

type Config struct {
	Server struct {
		Port            int           `mapstructure:"port"`
		AllowedOrigins  []string      `mapstructure:"allowed_origins"`
		BodyLimit       int64         `mapstructure:"body_limit"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`

	Database struct {
		URL         string `mapstructure:"url"`
		DirectURL   string `mapstructure:"direct_url"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"database"`

	Store struct {
		Driver string `mapstructure:"driver"`
	} `mapstructure:"store"`

	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	Log LogConfig `mapstructure:"log"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`

	VAT struct {
		DefaultRate string `mapstructure:"default_rate"`
	} `mapstructure:"vat"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// MigrationURL prefers the direct (non-pooled) connection string when one is set.
func (c *Config) MigrationURL() string {
	if c.Database.DirectURL != "" {
		return c.Database.DirectURL
	}
	return c.Database.URL
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Load reads configuration. path may be empty, in which case CONFIG_FILE is
// consulted; a missing file is not an error when neither is set.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional names used by hosting platforms.
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("database.direct_url", "DIRECT_URL")
	_ = v.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("database.direct_url", "")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("vat.default_rate", core.DefaultVATRate)
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, errors.New("server.body_limit must be positive"))
	}
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q must be %q or %q", c.Store.Driver, DriverPostgres, DriverMemory))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text, json or logfmt", c.Log.Format))
	}
	if _, err := core.ParseBasisPoints(c.VAT.DefaultRate); err != nil || strings.TrimSpace(c.VAT.DefaultRate) == "" {
		errs = append(errs, fmt.Errorf("vat.default_rate %q is not a percentage", c.VAT.DefaultRate))
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		errs = append(errs, errors.New("redis.ttl must be positive when redis is enabled"))
	}
	return errors.Join(errs...)
}
