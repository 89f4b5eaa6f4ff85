package main

import (
	"car_configurator_server/api"
	"car_configurator_server/config"
	"car_configurator_server/database"
	"car_configurator_server/services"
	"car_configurator_server/structs"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}
}

func main() {
	sm, err := buildServices()
	if err != nil {
		logger.Fatal("Failed to initialize services", gecho.Field("error", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := sm.AuthService.EnsureAdmin(ctx); err != nil {
		logger.Error("Failed to create bootstrap administrator", gecho.Field("error", err))
	}
	cancel()

	srv := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(sm),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	done := setupGracefulShutdown(srv, sm)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port),
		gecho.Field("environment", cfg.Server.Environment),
		gecho.Field("database_driver", cfg.Database.Driver),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", gecho.Field("error", err))
	}
	<-done
}

// buildServices connects to Postgres, or runs entirely in memory when DB_DRIVER=memory
func buildServices() (*services.ServiceManager, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using the in-memory store, data is lost on restart")
		return services.NewInMemoryServiceManager(logger, cfg), nil
	}

	if err := database.Initialize(); err != nil {
		return nil, err
	}
	db := database.GetInstance()

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.CreateSchema(ctx, db.DB); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return services.NewServiceManager(logger, cfg, db), nil
}

// setupGracefulShutdown drains in-flight requests on SIGINT/SIGTERM and then closes the pools.
// The returned channel is closed once shutdown has finished.
func setupGracefulShutdown(srv *http.Server, sm *services.ServiceManager) <-chan struct{} {
	done := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		defer close(done)
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown did not complete", gecho.Field("error", err))
		}
		if err := sm.CacheService.Close(); err != nil {
			logger.Error("Failed to close cache connection", gecho.Field("error", err))
		}
		if cfg.Database.Driver != "memory" {
			if err := database.CloseInstance(); err != nil {
				logger.Error("Failed to close database", gecho.Field("error", err))
			}
		}
		logger.Info("Server stopped")
	}()

	return done
}
