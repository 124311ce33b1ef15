package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/streetlight-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/streetlight-dashboard/internal/adapter/echarts"
	httpadapter "github.com/couchcryptid/streetlight-dashboard/internal/adapter/http"
	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/couchcryptid/streetlight-dashboard/internal/config"
	"github.com/couchcryptid/streetlight-dashboard/internal/observability"
	"github.com/couchcryptid/streetlight-dashboard/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ds, err := dataset.Load(cfg.DatasetPath, dataset.OptionsFromConfig(cfg))
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		"path", ds.Source(),
		"rows", ds.Len(),
		"years", ds.Years(),
		"coordinates", ds.HasCoordinates(),
	)

	opts := chart.DefaultOptions()
	opts.Zoom = cfg.MapZoom
	opts.ShowLegend = cfg.MapShowLegend

	d := pipeline.New(ds, opts, logger, metrics)
	sessions := pipeline.NewSessions(d, metrics, cfg.SessionCacheSize)
	page := echarts.NewRenderer(echarts.Options{
		Title:  cfg.Title,
		Footer: cfg.Footer,
		Debug:  cfg.Debug,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, d, sessions, page, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
