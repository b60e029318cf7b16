package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/causallab/dagcheck/pkg/api"
	"github.com/causallab/dagcheck/pkg/cache"
	"github.com/causallab/dagcheck/pkg/config"
	"github.com/causallab/dagcheck/pkg/observability/prom"
	"github.com/causallab/dagcheck/pkg/pipeline"
	"github.com/causallab/dagcheck/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address, overrides config
	noCache bool   // disable the report cache
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation server",
		Long: `Run the HTTP validation server.

The server exposes scenario validation, batch validation, and SVG rendering
under /v1, plus /healthz and Prometheus metrics under /metrics. The cache
backend, listen address, and optional MongoDB report archive come from the
config file.

Examples:
  dagcheck serve
  dagcheck serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	metrics := prom.New()
	metrics.Register()

	reportCache, err := c.serverCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(reportCache, nil, c.Logger)
	defer runner.Close()

	var archive store.Store
	if c.Config.Store.MongoURI != "" {
		archive, err = c.openStore(ctx)
		if err != nil {
			return err
		}
		defer archive.Close(context.Background())
		c.Logger.Info("report archive enabled", "database", c.Config.Store.Database)
	}

	addr := opts.addr
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	server := api.NewServer(api.Config{
		Runner:  runner,
		Store:   archive,
		Metrics: metrics.Handler(),
		Logger:  c.Logger,
		Options: c.pipelineOptions(),
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serverCache builds the cache backend for server mode. Unlike the CLI,
// serve honors the redis backend for multi-instance deployments.
func (c *CLI) serverCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: c.Config.Cache.RedisAddr,
			DB:   c.Config.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		c.Logger.Info("redis cache enabled", "addr", c.Config.Cache.RedisAddr)
		return rc, nil
	default:
		return c.newCache(false)
	}
}
