// Package cli implements the dagcheck command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/causallab/dagcheck/pkg/buildinfo"
	"github.com/causallab/dagcheck/pkg/cache"
	"github.com/causallab/dagcheck/pkg/config"
	"github.com/causallab/dagcheck/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dagcheck"

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
	Config config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.LoadDefault()
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("config load failed, using defaults", "err", err)
		c.Config = config.Default()
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "dagcheck",
		Short:        "Dagcheck validates causal DAG scenarios",
		Long:         `Dagcheck is a CLI tool for validating machine-generated causal-reasoning scenarios: it builds the causal graph from compact arrow notation and checks acyclicity, the backdoor criterion, collider conditioning, and role consistency.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == config.CacheBackendNone {
		return cache.NewNullCache(), nil
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// pipelineOptions builds default pipeline options from configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxPathDepth: c.Config.Validator.MaxPathDepth,
		Workers:      c.Config.Validator.Workers,
		CacheTTL:     c.Config.Cache.Duration(),
		Logger:       c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dagcheck/).
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
