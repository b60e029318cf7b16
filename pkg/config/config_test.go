package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/causallab/dagcheck/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("default cache backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default server addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Duration() != 24*time.Hour {
		t.Errorf("default TTL = %v", cfg.Cache.Duration())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[validator]
workers = 4
max_path_depth = 12

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"

[server]
addr = ":9090"

[store]
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Validator.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Validator.Workers)
	}
	if cfg.Validator.MaxPathDepth != 12 {
		t.Errorf("max_path_depth = %d, want 12", cfg.Validator.MaxPathDepth)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.Duration() != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.Cache.Duration())
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("mongo_uri = %q", cfg.Store.MongoURI)
	}
	// Unset fields keep their defaults.
	if cfg.Store.Database != "dagcheck" {
		t.Errorf("database = %q, want dagcheck", cfg.Store.Database)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `[cache` + "\n"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"negative workers", "[validator]\nworkers = -1\n"},
		{"negative depth", "[validator]\nmax_path_depth = -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "dagcheck", "config.toml") {
		t.Errorf("path = %q", path)
	}
}

func TestLoadDefaultEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":7777\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DAGCHECK_CONFIG", path)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault error: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("addr = %q, want :7777", cfg.Server.Addr)
	}
}
