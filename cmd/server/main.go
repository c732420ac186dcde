package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-fee-simulator/internal/config"
	"github.com/anyulbade/card-fee-simulator/internal/handler"
	"github.com/anyulbade/card-fee-simulator/internal/middleware"
	"github.com/anyulbade/card-fee-simulator/internal/repository"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	users, err := service.ParseStaffUsers(cfg.StaffUsers)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid STAFF_USERS")
	}
	if len(users) == 0 {
		log.Warn().Msg("no staff users configured, nobody can log in")
	}

	catalogFile, err := config.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("failed to read catalog configuration")
	}

	catalogs := service.NewCatalogService(
		repository.NewRateSourceRepository(catalogFile.Dir),
		catalogFile.CalcMode(),
		catalogFile.Sources(),
		cfg.LoadConcurrency,
	)

	// Warm the catalog so load errors show up in the logs at startup. The
	// server still starts and answers 503 until the sources are fixed.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := catalogs.Catalog(ctx); err != nil {
		log.Error().Err(err).Msg("rate catalog unavailable, simulations disabled")
	}
	cancel()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(catalogs)
	router.GET("/health", healthHandler.Health)

	handler.SetupSwagger(router)
	setupAPIRoutes(router, cfg, catalogs, service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, cfg *config.Config, catalogs *service.CatalogService, authService *service.AuthService) {
	simulationService := service.NewSimulationService(catalogs, cfg.ComparisonCacheTTL)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogs)
	simulationHandler := handler.NewSimulationHandler(simulationService, cfg.Currency)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", middleware.RateLimit(cfg.LoginRatePerMinute), authHandler.Login)

		staff := api.Group("", middleware.Auth(authService))
		staff.GET("/catalog/brands", catalogHandler.GetBrands)
		staff.GET("/catalog/installments", catalogHandler.GetInstallments)
		staff.GET("/simulations", simulationHandler.Simulate)
		staff.GET("/comparisons", simulationHandler.Compare)
	}
}
