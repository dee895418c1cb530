package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"keyword-engine-go/internal/config"
	"keyword-engine-go/internal/handler"
	"keyword-engine-go/internal/service"
	"keyword-engine-go/pkg/embedding"
	"keyword-engine-go/pkg/engine"
	"keyword-engine-go/pkg/logger"
	"keyword-engine-go/pkg/serp"
)

func main() {
	var (
		configPath = flag.String("config", "config/dev.yaml", "Configuration file path")
		debug      = flag.Bool("debug", false, "Enable debug mode")
	)
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(configPath string, debug bool) error {
	manager := config.NewManager()
	cfg, err := manager.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Logger.Level
	if debug {
		logLevel = "debug"
	}
	appLogger := logger.New(logger.Config{
		Level:      logLevel,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	logger.SetLogger(appLogger)
	logger.SetGlobalLogger(appLogger)

	// Capability probe: no embedding endpoint means lexical clustering
	var provider embedding.Provider
	if cfg.Embedding.Endpoint != "" {
		provider = embedding.NewHTTPProvider(
			cfg.Embedding.Endpoint,
			cfg.Embedding.APIKey,
			cfg.Embedding.Model,
			time.Duration(cfg.Embedding.TimeoutMs)*time.Millisecond,
		)
		appLogger.WithField("model", cfg.Embedding.Model).Info("Embedding provider configured")
	} else {
		appLogger.Info("No embedding provider configured, using lexical clustering")
	}

	var collector serp.Collector
	if cfg.Collector.Endpoint != "" {
		collector = serp.NewHTTPCollectorWithRetry(
			cfg.Collector.Endpoint,
			cfg.Collector.APIKey,
			cfg.Collector.MaxRetries,
			1*time.Second,
		)
		appLogger.Info("SERP collector configured")
	}

	eng := engine.NewWithThreshold(provider, cfg.Engine.DistanceThreshold)
	analysis := service.NewAnalysisService(eng, collector)

	app := fiber.New(fiber.Config{
		AppName:               "keyword-engine",
		DisableStartupMessage: true,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          60 * time.Second,
	})
	handler.NewController(analysis).Register(app)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- app.Listen(addr)
	}()
	appLogger.WithField("addr", addr).Info("Server started")

	select {
	case err := <-errChan:
		return fmt.Errorf("server stopped: %w", err)
	case <-sigChan:
		appLogger.Info("Shutdown signal received")
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLogger.Info("Server stopped")
	return nil
}
