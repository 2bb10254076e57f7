package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tidytree/pkg/cache"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

// Cache backends accepted in the [cache] section.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional config file. Command-line flags override it.
//
//	[layout]
//	spacing = 10
//	vertical_spacing = 10
//	formats = ["svg", "json"]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
//
//	[log]
//	format = "json"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// LayoutConfig holds pipeline defaults.
type LayoutConfig struct {
	Spacing         float64  `toml:"spacing"`
	VerticalSpacing float64  `toml:"vertical_spacing"`
	RootX           float64  `toml:"root_x"`
	RootY           float64  `toml:"root_y"`
	Formats         []string `toml:"formats"`
	Scale           float64  `toml:"scale"`
	Labels          bool     `toml:"labels"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file (default), redis or none
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures `serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	Timeout      duration `toml:"timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// LogConfig selects the log output format: text (default), json or logfmt.
type LogConfig struct {
	Format string `toml:"format"`
}

// duration decodes TOML strings like "30s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// configPath returns the default config file location
// ($XDG_CONFIG_HOME/tidytree/config.toml or ~/.config/tidytree/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := parseLogFormat(c.Log.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Cache.Backend {
	case "", backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("config: cache.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	return pipeline.ValidateFormats(c.Layout.Formats)
}

// pipelineOptions returns the layout defaults as pipeline options.
func (c Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Spacing:         c.Layout.Spacing,
		VerticalSpacing: c.Layout.VerticalSpacing,
		RootX:           c.Layout.RootX,
		RootY:           c.Layout.RootY,
		Formats:         c.Layout.Formats,
		Scale:           c.Layout.Scale,
		Labels:          c.Layout.Labels,
	}
}

// redisPrefix returns the configured key prefix or the default.
func (c Config) redisPrefix() string {
	if c.Cache.Prefix != "" {
		return c.Cache.Prefix
	}
	return cache.DefaultRedisPrefix
}
