package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/prettyteeth/internal/config"
	"github.com/vbonduro/prettyteeth/internal/logging"
	"github.com/vbonduro/prettyteeth/internal/metrics"
	"github.com/vbonduro/prettyteeth/internal/photostore/local"
	"github.com/vbonduro/prettyteeth/internal/reference"
	"github.com/vbonduro/prettyteeth/internal/service"
	"github.com/vbonduro/prettyteeth/internal/store"
	"github.com/vbonduro/prettyteeth/internal/web"
	"github.com/vbonduro/prettyteeth/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	repo := store.NewRepository()

	photoStg, err := local.New(cfg.UploadPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector(repo.Counts)
	}

	server := web.NewServer(web.Services{
		Schedules: service.NewScheduleService(repo.Schedules, logger),
		Reminders: service.NewReminderService(repo.Reminders, logger),
		Images:    service.NewImageService(repo.Images, photoStg, logger),
		Reference: reference.NewProvider(),
		Counts:    repo.Counts,
	}, templates.FS, web.Options{
		MaxUploadBytes:    cfg.MaxUploadBytes,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		Metrics:           collector,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.ListenAddr, cfg.ShutdownTimeout); err != nil {
		logger.Error("server error", "error", err)
		return
	}
	logger.Info("server stopped")
}
