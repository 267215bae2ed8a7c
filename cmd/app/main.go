package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kestrelgames/emberrealm/internal/bootstrap"
	"github.com/kestrelgames/emberrealm/internal/config"
	"github.com/kestrelgames/emberrealm/internal/database"
	"github.com/kestrelgames/emberrealm/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	services, err := bootstrap.InitializeServices(cfg, repos, publisher)
	if err != nil {
		slog.Error("Service setup failed", "error", err)
		os.Exit(1)
	}

	sseHub := bootstrap.InitializeSSEHub(eventBus)

	srv := server.NewServer(cfg.Port, dbPool, server.Services{
		Ledger:    services.Ledger,
		Inventory: services.Inventory,
		Character: services.Character,
		Shop:      services.Shop,
		Battle:    services.Battle,
		Catalog:   services.Catalog,
	}, sseHub)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server: srv,
		SSEHub: sseHub,
	})
}
