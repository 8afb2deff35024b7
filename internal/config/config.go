// Package config loads shootcal settings from an optional YAML file,
// SHOOTCAL_* environment variables and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SHOOTCAL_DB_PATH.
const EnvPrefix = "SHOOTCAL"

type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is text, json or auto (text on a terminal, json otherwise).
	Format string `mapstructure:"format" yaml:"format"`
}

// GeocodeConfig configures the Nominatim client.
type GeocodeConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint"`
	UserAgent    string `mapstructure:"user_agent" yaml:"user_agent"`
	CountryCodes string `mapstructure:"country_codes" yaml:"country_codes"`
	TimeoutMs    int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	MaxRetries   int    `mapstructure:"max_retries" yaml:"max_retries"`
}

type CacheConfig struct {
	TTL  time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Size int           `mapstructure:"size" yaml:"size"`
}

type SunConfig struct {
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

type OwnerConfig struct {
	// Default is the owner id used by the CLI and by HTTP requests
	// without an X-User-ID header.
	Default string `mapstructure:"default" yaml:"default"`
}

// Config is the top-level application configuration.
type Config struct {
	DB      DBConfig      `mapstructure:"db" yaml:"db"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Geocode GeocodeConfig `mapstructure:"geocode" yaml:"geocode"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Sun     SunConfig     `mapstructure:"sun" yaml:"sun"`
	Owner   OwnerConfig   `mapstructure:"owner" yaml:"owner"`
}

// DefaultConfig returns a Config with sensible defaults.
// Geocoding is enabled by default.
func DefaultConfig() Config {
	return Config{
		DB:     DBConfig{Path: defaultDBPath()},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "auto"},
		Geocode: GeocodeConfig{
			Enabled:      true,
			Endpoint:     "https://nominatim.openstreetmap.org",
			UserAgent:    "shootcal/1.0",
			CountryCodes: "ie,gb",
			TimeoutMs:    5000,
			MaxRetries:   1,
		},
		Cache: CacheConfig{TTL: 24 * time.Hour, Size: 4096},
		Sun:   SunConfig{Timezone: "Europe/Dublin"},
		Owner: OwnerConfig{Default: "local"},
	}
}

// DefaultConfigPath returns ~/.config/shootcal/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "shootcal", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "shootcal.db")
	}
	return filepath.Join(home, ".shootcal", "shootcal.db")
}

// Load reads configuration from the YAML file at path, then applies
// SHOOTCAL_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.path", def.DB.Path)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("geocode.enabled", def.Geocode.Enabled)
	v.SetDefault("geocode.endpoint", def.Geocode.Endpoint)
	v.SetDefault("geocode.user_agent", def.Geocode.UserAgent)
	v.SetDefault("geocode.country_codes", def.Geocode.CountryCodes)
	v.SetDefault("geocode.timeout_ms", def.Geocode.TimeoutMs)
	v.SetDefault("geocode.max_retries", def.Geocode.MaxRetries)
	v.SetDefault("cache.ttl", def.Cache.TTL)
	v.SetDefault("cache.size", def.Cache.Size)
	v.SetDefault("sun.timezone", def.Sun.Timezone)
	v.SetDefault("owner.default", def.Owner.Default)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would fail later at startup.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: invalid value %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format: invalid value %q", c.Log.Format)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive")
	}
	if c.Geocode.MaxRetries < 0 {
		return fmt.Errorf("geocode.max_retries must not be negative")
	}
	if _, err := time.LoadLocation(c.Sun.Timezone); err != nil {
		return fmt.Errorf("sun.timezone: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}
