package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wayfinder/app/echo-server/router"
	"wayfinder/business/quota"
	"wayfinder/business/suggestion"
	"wayfinder/internal/middleware"
	"wayfinder/internal/repository/contextinfo"
	"wayfinder/internal/repository/memory"
	psqlRepo "wayfinder/internal/repository/postgres"
	redisRepo "wayfinder/internal/repository/redis"
	"wayfinder/internal/repository/routing"
	"wayfinder/internal/rest"
	"wayfinder/pkg/config"
	"wayfinder/pkg/database"
	redisdb "wayfinder/pkg/database/redis"
	"wayfinder/pkg/logger"
	"wayfinder/pkg/metrics"
	"wayfinder/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Wayfinder", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Scoring configuration is validated once here; a bad weight set must
	// never reach request processing.
	opts := suggestion.ScoringOptions{
		ImplicitWeight:             cfg.Scoring.ImplicitWeight,
		ExplicitWeight:             cfg.Scoring.ExplicitWeight,
		NoveltyWeight:              cfg.Scoring.NoveltyWeight,
		ContextWeight:              cfg.Scoring.ContextWeight,
		QualityWeight:              cfg.Scoring.QualityWeight,
		MaxCandidates:              cfg.Scoring.MaxCandidates,
		MaxResults:                 cfg.Scoring.MaxResults,
		ReviewSmoothing:            cfg.Scoring.ReviewSmoothing,
		MinimumRating:              cfg.Scoring.MinimumRating,
		DistancePenaltyStartMeters: cfg.Scoring.DistancePenaltyStartMeters,
		DistancePenaltyMaxMeters:   cfg.Scoring.DistancePenaltyMaxMeters,
		EnableDebugFields:          cfg.Scoring.EnableDebugFields,
	}
	if err := opts.Validate(); err != nil {
		logger.Fatal("Invalid scoring configuration", "error", err)
	}

	// Quota store selection
	var quotaStore quota.Store
	var redisClient *redis.Client
	switch cfg.Quota.Backend {
	case "redis":
		redisClient, err = redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		quotaStore = redisRepo.NewQuotaStore(redisClient)
		logger.Info("Quota backend: redis")
	default:
		quotaStore = memory.NewQuotaStore()
		logger.Info("Quota backend: memory")
	}

	// Init repo
	placeRepo := psqlRepo.NewPlaceRepository(db)
	exclusionRepo := psqlRepo.NewExclusionRepository(db)
	profileRepo := psqlRepo.NewProfileRepository(db)
	eventRepo := psqlRepo.NewSuggestionEventRepository(db)
	contextProvider := contextinfo.NewLocalProvider()
	routeOptimizer := routing.NewNearestNeighborOptimizer()

	// Init service
	quotaService := quota.NewService(quotaStore, quota.ClaimsEntitlement{}, cfg.Quota.DefaultFreeCredits)
	suggestionService := suggestion.NewService(
		placeRepo,
		contextProvider,
		routeOptimizer,
		exclusionRepo,
		profileRepo,
		eventRepo,
		quotaService,
		opts,
	)

	// Init handler
	suggestionHandler := rest.NewSuggestionHandler(suggestionService, cfg.Scoring.EnableDebugFields)
	quotaHandler := rest.NewQuotaHandler(quotaService)
	profileHandler := rest.NewProfileHandler(profileRepo)
	exclusionHandler := rest.NewExclusionHandler(exclusionRepo)

	// Init metrics
	metrics.Init()
	prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "quota_zero_balance_users",
		Help: "Users currently at zero remaining credits",
	}, func() float64 {
		return float64(quotaService.ZeroQuotaUsers())
	}))

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupSuggestionRoutes(api, suggestionHandler, middleware.OptionalAuth())
	router.SetupQuotaRoutes(api, quotaHandler, middleware.RequireAuth(), middleware.AdminOnly())
	router.SetupProfileRoutes(api, profileHandler, middleware.RequireAuth())
	router.SetupExclusionRoutes(api, exclusionHandler, middleware.RequireAuth())

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		redisdb.CloseRedisClient(redisClient)
	}

	logger.Info("Server stopped")
}
