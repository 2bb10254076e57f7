package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[layout]
spacing = 4
vertical_spacing = 20
formats = ["svg", "json"]
labels = true

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
prefix = "tt:"

[server]
addr = ":9090"
timeout = "5s"

[log]
format = "json"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	opts := cfg.pipelineOptions()
	if opts.Spacing != 4 || opts.VerticalSpacing != 20 || !opts.Labels || len(opts.Formats) != 2 {
		t.Errorf("pipelineOptions() = %+v", opts)
	}
	if cfg.Cache.Backend != backendRedis || cfg.redisPrefix() != "tt:" {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Timeout.Duration != 5*time.Second {
		t.Errorf("server config = %+v", cfg.Server)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should be fine: %v", err)
	}
	if cfg.redisPrefix() == "" {
		t.Error("default redis prefix should be set")
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[layout`},
		{"unknown key", "[layout]\nwidth = 3\n"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"bad format", "[layout]\nformats = [\"gif\"]\n"},
		{"bad duration", "[server]\ntimeout = \"soon\"\n"},
		{"bad log format", "[log]\nformat = \"xml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("loadConfig() should fail")
			}
		})
	}
}
