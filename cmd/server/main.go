package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logger"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	configPath := pflag.String("config", "", "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store usecase.DocumentsRepo = repo.NewMemoryRepo()
	if cfg.Database.URL != "" {
		pool, err := infra.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect database")
		}
		defer pool.Close()
		if cfg.Database.Migrate {
			if err := migration.RunMigrations(ctx, pool); err != nil {
				logger.Fatal().Err(err).Msg("run migrations")
			}
		}
		store = repo.NewDocumentsRepo(pool)
	} else {
		logger.Warn().Msg("no database configured, documents are kept in memory")
	}

	renderer := infra.NewChromedpRenderer(cfg.Renderer.ChromePath, cfg.Renderer.Timeout)
	exporter := usecase.NewExporter(cfg.Export.SettleDelay, cfg.Export.Watchdog)
	svc := usecase.NewDocumentService(store, usecase.NewBuilder(), renderer, exporter)

	app := fiber.New(fiber.Config{BodyLimit: cfg.Server.BodyLimit, DisableStartupMessage: true})
	httpadapter.Register(app, httpadapter.NewHandler(svc))

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
