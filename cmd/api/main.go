package main

// @title Network Linked Data Index API
// @version 1.0.0
// @description Read-only linked-data index over the NHDPlus hydrography network.
// @description
// @description Resolves features from registered data sources (monitoring gages,
// @description HUC12 pour points, water quality sites, ...) onto NHDPlus catchments
// @description and flowlines, navigates the flowline graph upstream and downstream,
// @description and returns GeoJSON FeatureCollections of flowlines, linked features
// @description or aggregated basins.

// @license.name CC0-1.0
// @license.url https://creativecommons.org/publicdomain/zero/1.0/

// @BasePath /api/nldi
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/nldi-service/docs/swagger"
	"github.com/nldi-service/internal/config"
	httpDelivery "github.com/nldi-service/internal/delivery/http"
	"github.com/nldi-service/internal/delivery/http/handler"
	"github.com/nldi-service/internal/infrastructure/pygeoapi"
	"github.com/nldi-service/internal/pkg/logger"
	"github.com/nldi-service/internal/repository/postgres"
	"github.com/nldi-service/internal/usecase"
	"github.com/nldi-service/internal/usecase/dto"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting NLDI service",
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("base_url", cfg.BaseURL()),
	)

	// 3. Connect to the NHDPlus PostgreSQL database
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	// 4. Initialize repositories
	sourceRepo := postgres.NewCrawlerSourceRepository(db)
	featureRepo := postgres.NewFeatureRepository(db)
	flowlineRepo := postgres.NewFlowlineRepository(db)
	catchmentRepo := postgres.NewCatchmentRepository(db)
	basinRepo := postgres.NewBasinRepository(db)
	mainstemRepo := postgres.NewMainstemRepository(db)
	navRepo := postgres.NewNavigationRepository(db)
	pygeoapiClient := pygeoapi.NewClient(&cfg.PyGeoAPI, log)

	log.Info("Repositories initialized")

	// 5. Initialize use cases
	registry, err := usecase.NewSourceRegistry(ctx, sourceRepo, log)
	if err != nil {
		log.Fatal("Failed to load source registry", zap.Error(err))
	}

	links := dto.NewLinkBuilder(cfg.BaseURL())
	lookupUC := usecase.NewLookupUsecase(
		registry, featureRepo, flowlineRepo, catchmentRepo, mainstemRepo, pygeoapiClient, links, log)
	navUC := usecase.NewNavigationUsecase(
		registry, lookupUC, navRepo, flowlineRepo, featureRepo, basinRepo, pygeoapiClient, links, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP handlers
	pretty := cfg.Server.PrettyPrint
	aboutHandler := handler.NewAboutHandler(cfg, db, log)
	openAPIHandler := handler.NewOpenAPIHandler("/swagger/index.html", log)
	linkedDataHandler := handler.NewLinkedDataHandler(lookupUC, links, pretty, log)
	navigationHandler := handler.NewNavigationHandler(navUC, pretty, log)
	basinHandler := handler.NewBasinHandler(navUC, pretty, log)

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		aboutHandler,
		openAPIHandler,
		linkedDataHandler,
		navigationHandler,
		basinHandler,
	)

	// 8. Start server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("address", cfg.GetServerAddr()))

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
}
