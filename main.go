package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/products-cassandra-api/internal/app/seed"
	"github.com/mrops-br/products-cassandra-api/internal/app/service"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/config"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/http"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/repository"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level := telemetry.ParseLevel(cfg.LogLevel)

	var telem *telemetry.Telemetry
	if cfg.OTLP.Enabled {
		telem, err = telemetry.NewTelemetry(&cfg.OTLP, level)
	} else {
		telem, err = telemetry.NewNoOpTelemetry(&cfg.OTLP, level)
	}
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	if err := run(cfg, telem); err != nil {
		telem.Logger.Error("Service exited with error", slog.String("error", err.Error()))
		shutdownTelemetry(telem)
		os.Exit(1)
	}

	shutdownTelemetry(telem)
}

func run(cfg *config.Config, telem *telemetry.Telemetry) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API")

	repo, closeStore, err := repository.Open(ctx, &cfg.Store, tracer, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Error closing product store", slog.String("error", err.Error()))
		}
	}()

	if cfg.Seed.Enabled {
		if err := seed.NewSeeder(repo, tracer, logger).Run(ctx, cfg.Seed.Count); err != nil {
			return err
		}
	}

	productService := service.NewProductService(repo, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, telem.MeterProvider, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}

func shutdownTelemetry(telem *telemetry.Telemetry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telem.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down telemetry: %v", err)
	}
}
