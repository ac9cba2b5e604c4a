package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fracwatch/fracwatch/internal/alerts"
	"github.com/fracwatch/fracwatch/internal/api"
	"github.com/fracwatch/fracwatch/internal/config"
	"github.com/fracwatch/fracwatch/internal/ingest"
	"github.com/fracwatch/fracwatch/internal/metrics"
	"github.com/fracwatch/fracwatch/internal/playback"
	"github.com/fracwatch/fracwatch/internal/telemetry"
	"github.com/fracwatch/fracwatch/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("fracwatch starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"tick_interval", cfg.Playback.TickInterval,
		"depth_range", fmt.Sprintf("[%.0f, %.0f]", cfg.Detection.DepthMin, cfg.Detection.DepthMax),
		"http_port", cfg.Server.HTTPPort,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mtr := &metrics.Counters{}
	notifier := alerts.New(cfg.Alerts)

	ctrl := playback.New(playback.Config{
		Interval:          cfg.Playback.TickInterval,
		Thresholds:        cfg.Detection.Thresholds,
		MinBreachDuration: cfg.Detection.MinBreachDuration,
		SnapshotBuffer:    cfg.Playback.SnapshotBuffer,
		OnAlert:           notifier.Notify,
		Counters:          mtr,
	})

	if cfg.Input.CSVPath != "" {
		records, err := ingest.ReadFile(cfg.Input.CSVPath)
		if err != nil {
			slog.Error("failed to load csv", "path", cfg.Input.CSVPath, "err", err)
			os.Exit(1)
		}
		samples, diags := telemetry.Normalize(records, cfg.Detection.DepthMin, cfg.Detection.DepthMax)
		for _, d := range diags {
			slog.Warn("dropping malformed record", "err", d)
		}
		mtr.AddRecordsRejected(len(diags))
		accepted := ctrl.Ingest(samples)
		slog.Info("series loaded",
			"rows", len(records), "samples", accepted, "rejected", len(diags))
	} else {
		slog.Warn("no csv configured, series starts empty, feed POST /api/v1/records")
	}

	// Hot-reload the detection knobs when the config file changes.
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			ctrl.SetThresholds(updated.Detection.Thresholds)
			ctrl.SetMinBreachDuration(updated.Detection.MinBreachDuration)
			slog.Info("detection settings hot-reloaded",
				"red", updated.Detection.Thresholds.Red,
				"min_breach_duration", updated.Detection.MinBreachDuration,
			)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// Playback tick loop and the WebSocket hub draining its snapshots.
	hub := ws.New(ctrl)
	go hub.Run(ctx)
	go ctrl.Run(ctx)

	metricsHandler := metrics.NewHandler(mtr)
	metricsHandler.AddGauge("fracwatch_ws_clients",
		"Currently connected WebSocket clients.",
		func() float64 { return float64(hub.Count()) })

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(ctrl, cfg.Detection.DepthMin, cfg.Detection.DepthMax, mtr))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", metricsHandler)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("fracwatch shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
