package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/suiet/guardians/internal/guard/common/clock"
	"github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/config"
	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/gateways/feed"
	"github.com/suiet/guardians/internal/guard/gateways/locallist"
	"github.com/suiet/guardians/internal/guard/repos/bloom"
	"github.com/suiet/guardians/internal/guard/repos/snapshot"
	"github.com/suiet/guardians/internal/guard/repos/verdictcache"
	"github.com/suiet/guardians/internal/guard/services/guard"
	"github.com/suiet/guardians/internal/guard/services/scanner"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "guardians"
)

// Application holds the wired guard service and the configuration it was built from.
type Application struct {
	config *config.AppConfig
	guard  *guard.Service
	brands domain.BrandMap
}

// Close releases the snapshot store.
func (a *Application) Close() error { return a.guard.Close() }

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps errors onto exit codes.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(loadApplication)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", appName, ee.err)
			}
			return ee.code
		}
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

// loadApplication reads the environment, configures logging and wires the application.
func loadApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("logging configuration error: %w", err)
	}

	log.Info(map[string]any{
		"version":          version,
		"env":              cfg.Env,
		"log_level":        cfg.LogLevel,
		"domain_url":       feed.SanitizeURL(cfg.DomainURL),
		"retries":          cfg.Retries,
		"refresh_interval": cfg.RefreshInterval.String(),
		"cache_size":       cfg.CacheSize,
		"store_path":       cfg.StorePath,
	}, "Starting guardians")

	return buildApplication(ctx, cfg)
}

// buildApplication constructs all components and wires them together
func buildApplication(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	clk := &clock.RealClock{}

	// Initialize logger (already configured globally)
	logger := log.GetLogger()

	brands, err := config.LoadBrands(cfg.BrandsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build repositories: %w", err)
	}

	gateways, err := buildGateways(cfg, logger)
	if err != nil {
		if repos.store != nil {
			_ = repos.store.Close()
		}
		return nil, fmt.Errorf("failed to build gateways: %w", err)
	}

	svc, err := guard.New(guard.Options{
		Fetcher:      gateways.fetcher,
		Scanner:      scanner.New(brands),
		Store:        repos.store,
		Cache:        repos.cache,
		BloomFactory: repos.bloom,
		FPRate:       cfg.BloomFPRate,
		Local:        gateways.local,
		Interval:     cfg.RefreshInterval,
		Clock:        clk,
		Logger:       log.With(logger, map[string]any{"component": "guard"}),
	})
	if err != nil {
		if repos.store != nil {
			_ = repos.store.Close()
		}
		return nil, fmt.Errorf("failed to build guard service: %w", err)
	}

	return &Application{config: cfg, guard: svc, brands: brands}, nil
}

// repositories holds all repository implementations
type repositories struct {
	store guard.SnapshotStore
	cache guard.VerdictCache
	bloom guard.BloomFactory
}

// gateways holds all gateway implementations
type gateways struct {
	fetcher guard.Fetcher
	local   *domain.DomainBlocklist
}

// buildRepositories creates and configures all repository implementations
func buildRepositories(ctx context.Context, cfg *config.AppConfig, logger log.Logger) (*repositories, error) {
	cache, err := verdictcache.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict cache: %w", err)
	}
	log.Info(map[string]any{
		"type": "LRU",
		"size": cfg.CacheSize,
	}, "Verdict cache configured")

	repos := &repositories{cache: cache, bloom: bloom.NewFactory()}

	if cfg.StorePath == "" {
		log.Info(map[string]any{"disabled": true}, "Snapshot persistence disabled")
		return repos, nil
	}
	store, err := snapshot.Open(ctx, cfg.StorePath, log.With(logger, map[string]any{"component": "snapshot"}))
	if err != nil {
		return nil, err
	}
	repos.store = store
	log.Info(map[string]any{"path": cfg.StorePath}, "Snapshot store opened")
	return repos, nil
}

// buildGateways creates the list client and loads local override lists
func buildGateways(cfg *config.AppConfig, logger log.Logger) (*gateways, error) {
	opts := cfg.FeedOptions()
	opts.Logger = log.With(logger, map[string]any{"component": "feed"})

	local, err := locallist.Load(cfg.LocalAllowlist, cfg.LocalBlocklist, log.With(logger, map[string]any{"component": "locallist"}))
	if err != nil {
		return nil, err
	}
	return &gateways{fetcher: feed.New(opts), local: local}, nil
}
