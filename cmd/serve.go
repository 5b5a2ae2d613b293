package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/server"
)

const pruneInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd, "")
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := buildDeps(ctx, cmd, cfg, log)
		if err != nil {
			log.Error("startup failed", zap.Error(err))
			return err
		}
		defer d.Close()

		go pruneArtifacts(ctx, d, cfg.ArtifactTTL)

		srv := server.New(d.generator, d.artifacts, server.Options{
			Addr:           cfg.Addr,
			RequestTimeout: cfg.RequestTimeout,
			MaxBodyBytes:   cfg.MaxBodyBytes,
			CORSOrigins:    cfg.CORSOrigins,
			MetricsEnabled: cfg.MetricsEnabled,
			Logger:         log,
		})
		if err := srv.Run(ctx); err != nil {
			log.Error("server stopped", zap.Error(err))
			return err
		}
		log.Info("Server exiting")
		return nil
	},
}

// pruneArtifacts deletes expired pages at startup and then hourly.
func pruneArtifacts(ctx context.Context, d *deps, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	prune := func() {
		n, err := d.artifacts.Prune(ttl)
		if err != nil {
			d.log.Warn("prune artifacts", zap.Error(err))
			return
		}
		if n > 0 {
			d.log.Info("pruned artifacts", zap.Int("removed", n))
		}
	}

	prune()
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides GAPFILL_ADDR)")
}
