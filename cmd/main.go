package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/karimdoss-design/campustad/config"
	"github.com/karimdoss-design/campustad/db"
	"github.com/karimdoss-design/campustad/handlers"
	"github.com/karimdoss-design/campustad/middleware"
	"github.com/karimdoss-design/campustad/repositories"
	api "github.com/karimdoss-design/campustad/routes"
	"github.com/karimdoss-design/campustad/services"
	"github.com/karimdoss-design/campustad/standings"
	"github.com/karimdoss-design/campustad/storage"
	_ "github.com/lib/pq"
)

// How often the background player stats recompute runs. Best-effort: a
// failed run is logged and the next tick tries again.
const statsRecomputeInterval = 5 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	liveHub := standings.NewHub(logger)
	go liveHub.Run()
	logger.Info("live hub started")

	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	goalRepo := repositories.NewPostgresGoalRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	newsRepo := repositories.NewPostgresNewsRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(profileRepo)
	profileService := services.NewProfileService(profileRepo)
	rosterService := services.NewRosterService(teamRepo, groupRepo, playerRepo, logger)
	matchService := services.NewMatchService(matchRepo, goalRepo, playerRepo, liveHub)
	standingsService := services.NewStandingsService(teamRepo, groupRepo, playerRepo, matchRepo)
	predictionService := services.NewPredictionService(predictionRepo, matchRepo)
	newsService := services.NewNewsService(newsRepo, profileRepo, uploader, liveHub, logger)
	logger.Info("services initialized")

	// Background refresh of the per-player counters from the goal ledger.
	go func() {
		ticker := time.NewTicker(statsRecomputeInterval)
		defer ticker.Stop()
		logger.Info("player stats recompute scheduler started", slog.Duration("interval", statsRecomputeInterval))

		if err := rosterService.RecomputePlayerStats(context.Background()); err != nil {
			logger.Error("scheduler: initial stats recompute failed", slog.Any("error", err))
		}
		for range ticker.C {
			if err := rosterService.RecomputePlayerStats(context.Background()); err != nil {
				logger.Error("scheduler: stats recompute failed", slog.Any("error", err))
			}
		}
	}()

	guard := middleware.NewGuard(profileRepo)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	profileHandler := handlers.NewProfileHandler(profileService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	matchHandler := handlers.NewMatchHandler(matchService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	newsHandler := handlers.NewNewsHandler(newsService)
	adminHandler := handlers.NewAdminHandler(profileService, rosterService, matchService)
	webSocketHandler := handlers.NewWebSocketHandler(liveHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		guard,
		authHandler,
		profileHandler,
		rosterHandler,
		matchHandler,
		standingsHandler,
		predictionHandler,
		newsHandler,
		adminHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
