package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/config"
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"
	"github.com/rpconseil/dossiers_end/repository"
	"github.com/rpconseil/dossiers_end/routes"
	"github.com/rpconseil/dossiers_end/service"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	utils.InitLogger()
	if !cfg.EnvFileLoaded() {
		utils.Logger.Debug().Msg("no .env file, using process environment")
	}
	if cfg.AppPassword == "" {
		utils.Logger.Warn().Msg("APP_PASSWORD is empty, every login will be rejected")
	}
	utils.InitAuth(cfg.JWTKey, cfg.AppPassword)

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx := context.Background()
	if err := repository.InitMongoDB(rootCtx, cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
		defer cancel()
		repository.CloseMongoDB(ctx)
	}()

	initCtx, initCancel := context.WithTimeout(rootCtx, 30*time.Second)
	if err := repository.InitializeCollections(initCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("collection initialisation failed")
	}
	initCancel()

	source := repository.NewMongoSource()
	snapshots := service.NewSnapshotService(source, cfg.SnapshotTTL)
	controllers.Configure(source, snapshots, analytics.Thresholds{
		ReferralMin:     cfg.Thresholds.ReferralMin,
		InvoicingMin:    cfg.Thresholds.InvoicingMin,
		PaymentMin:      cfg.Thresholds.PaymentMin,
		CancellationMax: cfg.Thresholds.CancellationMax,
	})

	utils.LogInfo(map[string]interface{}{
		"database":    cfg.MongoDB,
		"snapshotTTL": cfg.SnapshotTTL.String(),
		"corsOrigins": cfg.CORSOrigins,
	}, "service configured")

	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware(source))

	routes.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Msgf("server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("server shutdown failed")
	}

	utils.Logger.Info().Msg("server stopped")
}
