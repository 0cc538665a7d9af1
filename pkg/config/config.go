// Package config loads Libra's configuration.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/libra/config.toml
//  3. LIBRA_* environment variables, named by each field's env tag
//
// Example file:
//
//	[cache]
//	backend = "redis"
//	positive_ttl = "1h"
//	negative_ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[http]
//	timeout = "10s"
//	rate_limit = 5.0
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/libra/pkg/cache"
	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/httputil"
)

// AppName names the config and cache directories.
const AppName = "libra"

// Config is the complete application configuration.
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	HTTP     HTTPConfig     `toml:"http"`
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
}

// CacheConfig selects the cache backend and TTL policy.
type CacheConfig struct {
	Backend     string      `toml:"backend" env:"CACHE_BACKEND"`
	Dir         string      `toml:"dir" env:"CACHE_DIR"`
	Namespace   string      `toml:"namespace" env:"CACHE_NAMESPACE"`
	PositiveTTL Duration    `toml:"positive_ttl" env:"CACHE_POSITIVE_TTL"`
	NegativeTTL Duration    `toml:"negative_ttl" env:"CACHE_NEGATIVE_TTL"`
	Redis       RedisConfig `toml:"redis"`
	Mongo       MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri" env:"MONGO_URI"`
	Database   string `toml:"database" env:"MONGO_DATABASE"`
	Collection string `toml:"collection" env:"MONGO_COLLECTION"`
}

// HTTPConfig configures outbound requests.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout" env:"HTTP_TIMEOUT"`
	UserAgent string   `toml:"user_agent" env:"USER_AGENT"`
	RateLimit float64  `toml:"rate_limit" env:"RATE_LIMIT"` // requests per second per host, 0 = unlimited
	Burst     int      `toml:"burst" env:"HTTP_BURST"`
}

// ServerConfig configures `libra serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr" env:"SERVER_ADDR"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// UpstreamConfig overrides registry base URLs. Empty means production.
type UpstreamConfig struct {
	NPM    string `toml:"npm" env:"NPM_URL"`
	JSR    string `toml:"jsr" env:"JSR_URL"`
	Crates string `toml:"crates" env:"CRATES_URL"`
	ESM    string `toml:"esm" env:"ESM_URL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:     cache.BackendFile,
			Namespace:   cache.DefaultNamespace,
			PositiveTTL: Duration(cache.DefaultPositiveTTL),
			NegativeTTL: Duration(cache.DefaultNegativeTTL),
			Mongo: MongoConfig{
				Database:   cache.DefaultMongoDatabase,
				Collection: cache.DefaultMongoCollection,
			},
		},
		HTTP: HTTPConfig{
			Timeout:   Duration(httputil.DefaultTimeout),
			UserAgent: httputil.UserAgent,
			Burst:     1,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
		},
	}
}

// Load reads the file at path on top of the defaults and applies
// environment overrides. An empty path uses [DefaultPath]; a missing
// default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				path = ""
			} else {
				return nil, liberrors.Wrap(liberrors.ErrCodeInvalidConfig, err, "read config %s", path)
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendMemory, cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return liberrors.New(liberrors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.Mongo.URI == "" {
			return liberrors.New(liberrors.ErrCodeInvalidConfig, "cache.mongo.uri is required for the mongo backend")
		}
	default:
		return liberrors.New(liberrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.PositiveTTL < 0 || c.Cache.NegativeTTL < 0 {
		return liberrors.New(liberrors.ErrCodeInvalidConfig, "cache TTLs must not be negative")
	}
	if c.HTTP.Timeout < 0 {
		return liberrors.New(liberrors.ErrCodeInvalidConfig, "http.timeout must not be negative")
	}
	if c.HTTP.RateLimit < 0 {
		return liberrors.New(liberrors.ErrCodeInvalidConfig, "http.rate_limit must not be negative")
	}
	if c.Server.Addr == "" {
		return liberrors.New(liberrors.ErrCodeInvalidConfig, "server.addr is required")
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open]. The file
// backend falls back to [CacheDir] when no directory is configured.
func (c *Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return opts, fmt.Errorf("get cache dir: %w", err)
		}
		opts.Dir = dir
	}
	return opts, nil
}

// TTLPolicy returns the configured cache TTLs.
func (c *Config) TTLPolicy() cache.TTLPolicy {
	return cache.TTLPolicy{
		Positive: time.Duration(c.Cache.PositiveTTL),
		Negative: time.Duration(c.Cache.NegativeTTL),
	}.WithDefaults()
}

// HTTPOptions converts the http section for [httputil.NewClient].
func (c *Config) HTTPOptions() httputil.Options {
	return httputil.Options{
		Timeout:   time.Duration(c.HTTP.Timeout),
		UserAgent: c.HTTP.UserAgent,
		RateLimit: c.HTTP.RateLimit,
		Burst:     c.HTTP.Burst,
	}
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// DefaultPath returns $XDG_CONFIG_HOME/libra/config.toml, falling back to
// ~/.config/libra/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/libra/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
