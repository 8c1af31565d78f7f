package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opengamebackend/collection/internal/catalog"
	"github.com/opengamebackend/collection/internal/claim"
	"github.com/opengamebackend/collection/internal/collection"
	"github.com/opengamebackend/collection/internal/config"
	"github.com/opengamebackend/collection/internal/container"
	"github.com/opengamebackend/collection/internal/database"
	"github.com/opengamebackend/collection/internal/database/postgres"
	"github.com/opengamebackend/collection/internal/handler"
	"github.com/opengamebackend/collection/internal/loadout"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/server"
)

// @title Collection Service API
// @version 1.0
// @description Player item collections: catalog reconciliation, loot containers, item set claims and loadouts.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.Environment != "prod",
	))

	handler.InitValidator()

	pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: 5 * time.Minute,
		MaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	claimsRepo := postgres.NewClaimsRepository(pool)
	loadoutsRepo := postgres.NewLoadoutsRepository(pool)

	catalogService := catalog.NewService(catalogRepo)
	collectionService := collection.NewService(collectionRepo, catalogService)
	containerService := container.NewService(collectionRepo, catalogService, nil)
	claimService := claim.NewService(claimsRepo)
	loadoutService := loadout.NewService(loadoutsRepo, catalogRepo)

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		pool,
		catalogService,
		collectionService,
		containerService,
		claimService,
		loadoutService,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		logger.Warn("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
}
