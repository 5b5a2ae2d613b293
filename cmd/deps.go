package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/artifact"
	"github.com/abhisek/gapfill/internal/cache"
	"github.com/abhisek/gapfill/internal/config"
	"github.com/abhisek/gapfill/internal/gapfill"
	"github.com/abhisek/gapfill/internal/llm"
	"github.com/abhisek/gapfill/internal/logger"
	"github.com/abhisek/gapfill/internal/store"
)

// deps are the long-lived pieces every pipeline command needs.
type deps struct {
	cfg       *config.Config
	log       *zap.Logger
	store     *store.Store
	cache     cache.Cache
	artifacts *artifact.Store
	generator *gapfill.Generator
}

// loadConfig reads the environment and builds the logger. CLI commands log
// to stderr with the console encoder unless told otherwise.
func loadConfig(cmd *cobra.Command, encoding string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if encoding == "" {
		encoding = cfg.LogEncoding
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: encoding, OutputPath: cfg.LogOutput})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// buildDeps wires the store, cache, artifact store and provider into a
// generator.
func buildDeps(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log *zap.Logger) (*deps, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d := &deps{cfg: cfg, log: log, store: st}

	if cfg.RedisURL != "" {
		r, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.cache = r
	} else {
		d.cache = cache.NewMemory()
	}

	d.artifacts, err = artifact.New(cfg.ArtifactDir)
	if err != nil {
		d.Close()
		return nil, err
	}

	repo := st.EventRepo()
	provider, err := llm.NewProvider(ctx, cfg.LLM, repo, log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("create %s provider: %w", cfg.LLM.Provider, err)
	}

	d.generator, err = gapfill.New(provider, gapfill.Options{
		ProviderName: cfg.LLM.Provider,
		Cache:        d.cache,
		CacheTTL:     cfg.CacheTTL,
		Events:       repo,
		Artifacts:    d.artifacts,
		Logger:       log,
	})
	if err != nil {
		d.Close()
		return nil, err
	}

	log.Debug("pipeline ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
		zap.String("artifacts", d.artifacts.Dir()))
	return d, nil
}

// Close releases the cache and the store.
func (d *deps) Close() {
	if d.cache != nil {
		_ = d.cache.Close()
	}
	if d.store != nil {
		_ = d.store.Close()
	}
	_ = d.log.Sync()
}
