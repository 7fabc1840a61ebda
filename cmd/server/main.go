// Package main initializes and starts the wholesale portal server,
// setting up configuration, logging, repositories, services, handlers
// and the HTTP server.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/aursland/wholesale-portal/internal/config"
	"github.com/aursland/wholesale-portal/internal/db"
	"github.com/aursland/wholesale-portal/internal/logger"
	"github.com/aursland/wholesale-portal/internal/repository"
	"github.com/aursland/wholesale-portal/internal/server/handler/http"
	"github.com/aursland/wholesale-portal/internal/service"
	"github.com/aursland/wholesale-portal/internal/web"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, environment and file configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The revocation store is in-memory by default; a configured
	// Postgres DSN switches to the shared store for multi-instance
	// deployments.
	var revocations service.RevocationStore = repository.NewMemoryRevocationStore()
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer func() { _ = postgresDB.Close() }()

		// Drop revocation rows whose tokens have expired anyway.
		db.StartRevocationCleaner(ctx, postgresDB, time.Hour, zapLogger)

		revocations = repository.NewPostgresRevocationStore(postgresDB)
	}

	// Initialize file-backed repositories for clients and catalogs.
	clientRepo := repository.NewFileClientRepository(options.ConfigDir, options.ClientCodes)
	catalogRepo := repository.NewFileCatalogRepository(options.ConfigDir)

	// Initialize business-logic services.
	tokenService := service.NewTokenService(
		options.JWTSecret,
		time.Duration(options.TokenTTLMinutes)*time.Minute,
		revocations,
	)
	clientService := service.NewClientService(clientRepo)
	catalogService := service.NewCatalogService(clientRepo, catalogRepo)

	// Create HTTP handlers for the API surface.
	authHandler := &http.AuthHandler{TokenService: tokenService, ClientService: clientService, Log: zapLogger}
	clientHandler := &http.ClientHandler{ClientService: clientService, Log: zapLogger}
	catalogHandler := &http.CatalogHandler{CatalogService: catalogService, Log: zapLogger}
	healthHandler := &http.HealthHandler{Version: cmp.Or(version, "dev"), Started: time.Now()}

	// Frontend pages.
	webHandler, err := web.New(zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to init web frontend", zap.Error(err))
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler, clientHandler, catalogHandler, healthHandler,
		tokenService, options.CORSOrigin, zapLogger, webHandler.Routes(),
	)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(options.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	zapLogger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown", zap.Error(err))
	}
}
