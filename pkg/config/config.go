// Package config loads suechart settings from a TOML file and the environment.
//
// Settings are resolved in three layers, each overriding the previous one:
// built-in defaults, the config file, and SUECHART_* environment variables.
// A missing config file is not an error.
//
// # File Format
//
//	[endpoint]
//	base_url = "https://sue.st.nzz.ch"
//	timeout  = "30s"
//
//	[cache]
//	backend    = "file"          # none, file or redis
//	dir        = "~/.cache/suechart"
//	ttl        = "24h"
//	redis_addr = "localhost:6379"
//	redis_db   = 0
//
//	[store]
//	backend    = "file"          # file or mongo
//	dir        = "~/.local/share/suechart/documents"
//	mongo_uri  = "mongodb://localhost:27017"
//	database   = "suechart"
//	collection = "documents"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "suechart"

// DefaultBaseURL is the public render service.
const DefaultBaseURL = "https://sue.st.nzz.ch"

// Backend names.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"

	StoreFile  = "file"
	StoreMongo = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Endpoint Endpoint `toml:"endpoint"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Server   Server   `toml:"server"`
}

// Endpoint configures the render service client.
type Endpoint struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// Cache configures the render response cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// Store configures where documents are kept.
type Store struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("30s", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	cacheDir, _ := CacheDir()
	dataDir, _ := DataDir()
	return Config{
		Endpoint: Endpoint{
			BaseURL: DefaultBaseURL,
			Timeout: Duration{30 * time.Second},
		},
		Cache: Cache{
			Backend: CacheNone,
			Dir:     cacheDir,
			TTL:     Duration{24 * time.Hour},
		},
		Store: Store{
			Backend:    StoreFile,
			Dir:        filepath.Join(dataDir, "documents"),
			Database:   appName,
			Collection: "documents",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path means [Path]; a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		missing := errors.Is(err, fs.ErrNotExist) && !explicit
		if err != nil && !missing {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Store.Dir = expandHome(cfg.Store.Dir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend names and required settings.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.Endpoint.BaseURL, "http://") && !strings.HasPrefix(c.Endpoint.BaseURL, "https://") {
		return fmt.Errorf("endpoint.base_url must be an http(s) URL, got %q", c.Endpoint.BaseURL)
	}
	if c.Endpoint.Timeout.Duration <= 0 {
		return fmt.Errorf("endpoint.timeout must be positive")
	}
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}
	switch c.Store.Backend {
	case StoreFile, StoreMongo:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return fmt.Errorf("store.mongo_uri is required for the mongo backend")
	}
	return nil
}

// applyEnv overrides settings from SUECHART_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SUECHART_BASE_URL":         &c.Endpoint.BaseURL,
		"SUECHART_CACHE":            &c.Cache.Backend,
		"SUECHART_CACHE_DIR":        &c.Cache.Dir,
		"SUECHART_REDIS_ADDR":       &c.Cache.RedisAddr,
		"SUECHART_STORE":            &c.Store.Backend,
		"SUECHART_STORE_DIR":        &c.Store.Dir,
		"SUECHART_MONGO_URI":        &c.Store.MongoURI,
		"SUECHART_MONGO_DATABASE":   &c.Store.Database,
		"SUECHART_MONGO_COLLECTION": &c.Store.Collection,
		"SUECHART_ADDR":             &c.Server.Addr,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	dur := map[string]*Duration{
		"SUECHART_TIMEOUT":   &c.Endpoint.Timeout,
		"SUECHART_CACHE_TTL": &c.Cache.TTL,
	}
	for key, dst := range dur {
		if v, ok := lookup(key); ok && v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}

	if v, ok := lookup("SUECHART_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SUECHART_REDIS_DB: %w", err)
		}
		c.Cache.RedisDB = db
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
