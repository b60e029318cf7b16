// Package config loads validator settings from a TOML file.
//
// Settings follow the XDG convention: the default location is
// ~/.config/dagcheck/config.toml, overridable with DAGCHECK_CONFIG. Every
// field has a working default so the file is optional.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/causallab/dagcheck/pkg/errors"
)

// appName is the application name used for directories.
const appName = "dagcheck"

// Backend names accepted in the [cache] section.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config holds all validator settings.
type Config struct {
	Validator ValidatorConfig `toml:"validator"`
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
}

// ValidatorConfig tunes the validation engine.
type ValidatorConfig struct {
	// Workers is the batch validation concurrency. Zero means one worker
	// per CPU.
	Workers int `toml:"workers"`

	// MaxPathDepth caps backdoor path enumeration. Zero means unbounded
	// (up to the variable count).
	MaxPathDepth int `toml:"max_path_depth"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	TTL       duration `toml:"ttl"`
}

// ServerConfig tunes the HTTP validation server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig points at the optional mongo report archive.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// duration wraps time.Duration so TTLs can be written as "24h" in TOML.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the cache TTL as a time.Duration.
func (c CacheConfig) Duration() time.Duration { return time.Duration(c.TTL) }

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Validator: ValidatorConfig{},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			TTL:     duration(24 * time.Hour),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			Database:   appName,
			Collection: "reports",
		},
	}
}

// Load reads configuration from path. A missing file returns defaults; a
// present but invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config file")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config file")
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault reads configuration from DAGCHECK_CONFIG or the XDG default
// location.
func LoadDefault() (Config, error) {
	if path := os.Getenv("DAGCHECK_CONFIG"); path != "" {
		return Load(path)
	}
	path, err := DefaultPath()
	if err != nil {
		// No home directory, run on defaults.
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the XDG config file location
// (~/.config/dagcheck/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
	}
	if c.Validator.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "validator workers must not be negative")
	}
	if c.Validator.MaxPathDepth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "validator max_path_depth must not be negative")
	}
	return nil
}
