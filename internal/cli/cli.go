// Package cli implements the tidytree command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/tidytree/pkg/buildinfo"
	"github.com/matzehuels/tidytree/pkg/cache"
	"github.com/matzehuels/tidytree/pkg/observability"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tidytree"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	status     io.Writer // spinner output
	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tidytree lays out trees the tidy way",
		Long: `tidytree computes Reingold-Tilford layouts for rooted trees.

Any graph can be laid out: a spanning tree is taken by depth-first search
from the chosen root and every other edge is dropped. Parents end up centered
over their children, siblings keep a minimum distance at every depth, and
mirror-image subtrees are drawn as mirror images.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			if f, err := parseLogFormat(cfg.Log.Format); err == nil {
				c.Logger.SetFormatter(f)
			}
			// Hook events only show up with --verbose.
			observability.NewLogHooks(c.Logger).Register()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tidytree/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are shared by every command that runs the pipeline.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

func (f *cacheFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.StringVar(&f.redisURL, "redis", "", "cache in redis at this URL instead of on disk (redis://host:port/db)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks the cache backend: flags first, then the config file, then
// the file cache in cacheDir.
func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	cfg := c.config.Cache
	switch {
	case f.noCache, cfg.Backend == backendNone:
		return cache.NewNullCache(), nil
	case f.redisURL != "":
		return cache.NewRedisCache(ctx, f.redisURL, c.config.redisPrefix())
	case cfg.Backend == backendRedis:
		return cache.NewRedisCache(ctx, cfg.RedisURL, c.config.redisPrefix())
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tidytree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags binds the layout and render flags to opts.
func layoutFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVarP(&opts.Root, "root", "r", "", "root vertex ID (required)")
	fs.Float64Var(&opts.Spacing, "spacing", pipeline.DefaultSpacing, "minimum horizontal distance between nodes on a level")
	fs.Float64Var(&opts.VerticalSpacing, "vertical-spacing", pipeline.DefaultVerticalSpacing, "distance between levels")
	fs.Float64Var(&opts.RootX, "root-x", 0, "x coordinate of the root")
	fs.Float64Var(&opts.RootY, "root-y", 0, "y coordinate of the root")
	fs.BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")
}

// applyConfig fills options from the config file wherever the matching flag
// was not given explicitly.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	def := c.config.pipelineOptions()
	changed := cmd.Flags().Changed

	if !changed("spacing") && def.Spacing != 0 {
		opts.Spacing = def.Spacing
	}
	if !changed("vertical-spacing") && def.VerticalSpacing != 0 {
		opts.VerticalSpacing = def.VerticalSpacing
	}
	if !changed("root-x") && def.RootX != 0 {
		opts.RootX = def.RootX
	}
	if !changed("root-y") && def.RootY != 0 {
		opts.RootY = def.RootY
	}
	if !changed("format") && len(def.Formats) > 0 {
		opts.Formats = def.Formats
	}
	if !changed("scale") && def.Scale != 0 {
		opts.Scale = def.Scale
	}
	if !changed("labels") && def.Labels {
		opts.Labels = true
	}
	opts.Logger = c.Logger
}
