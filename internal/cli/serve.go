package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/internal/server"
	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/pipeline"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz               liveness and build information
  POST /v1/layout             task list → layout JSON
  POST /v1/render/{format}    task list → rendered artifact

Artifacts are cached in Redis when a Redis address is configured, otherwise
in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			if redis != "" {
				c.cfg.Cache.RedisAddr = redis
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&redis, "redis", "", "Redis address for the artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	loc, err := c.cfg.Location()
	if err != nil {
		return err
	}

	cc, backend, err := c.serverCache(ctx, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), c.Logger)
	runner.ArtifactTTL = c.cfg.Cache.TTL
	defer runner.Close()

	registerLogHooks(c.Logger)

	handler := server.New(server.Config{
		Runner:       runner,
		Logger:       c.Logger,
		Location:     loc,
		MaxBodyBytes: c.cfg.Server.MaxBodyBytes,
	})
	srv := server.NewServer(c.cfg.Server.Addr, handler, c.cfg.Server.ReadTimeout, c.cfg.Server.WriteTimeout, c.Logger)

	printSuccess("Serving %s API", appName)
	printKeyValue("Address", c.cfg.Server.Addr)
	printKeyValue("Cache", backend)
	printKeyValue("Timezone", loc.String())
	printNewline()

	return srv.Run(ctx)
}

// serverCache picks Redis when configured, otherwise the file cache.
func (c *CLI) serverCache(ctx context.Context, noCache bool) (cache.Cache, string, error) {
	if noCache {
		return cache.NewNullCache(), "disabled", nil
	}
	if addr := c.cfg.Cache.RedisAddr; addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     addr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, "", fmt.Errorf("connect to redis: %w", err)
		}
		return rc, "redis " + addr, nil
	}
	cc, err := c.newCache(false)
	if err != nil {
		return nil, "", fmt.Errorf("open cache: %w", err)
	}
	dir, _ := c.cfg.CacheDir()
	return cc, "file " + dir, nil
}
