package main

import (
	"fmt"
	"log"

	"vexport/internal/config"
	"vexport/internal/convert"
	"vexport/internal/engine"
	"vexport/internal/handler"
	"vexport/internal/port"
	"vexport/internal/router"
	"vexport/internal/service"
	s3storage "vexport/internal/storage/s3"
	"vexport/internal/workpool"

	// Engine providers register themselves with the factory.
	_ "vexport/internal/engine/httprender"
	_ "vexport/internal/engine/vlconvert"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Fail fast on a misconfigured engine before serving traffic.
	newEngine := engine.Factory(&cfg.Engine)
	if _, err := newEngine(); err != nil {
		return fmt.Errorf("failed to initialize conversion engine: %w", err)
	}

	pool := workpool.New(cfg.Pool.Workers)
	defer pool.Wait()

	// Initialize artifact storage (optional)
	var storage port.ObjectStorage
	if cfg.Storage.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize artifact storage: %w", err)
		}
	}

	// Initialize services
	facade := convert.New(newEngine, pool)
	convertSvc := service.NewConvertService(facade)
	exportSvc := service.NewExportService(convertSvc, storage, &cfg.Storage)

	// Initialize handlers
	convertH := handler.NewConvertHandler(convertSvc, cfg)
	exportH := handler.NewExportHandler(exportSvc, cfg)
	healthH := handler.NewHealthHandler(newEngine)

	// Setup router
	r := router.Setup(cfg, convertH, exportH, healthH)

	log.Printf("Server starting on %s (engine=%s, workers=%d)",
		cfg.Server.Port, cfg.Engine.Provider, cfg.Pool.Workers)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
