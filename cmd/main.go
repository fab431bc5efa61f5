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

	"github.com/fbessa/tournament-server/config"
	"github.com/fbessa/tournament-server/db"
	"github.com/fbessa/tournament-server/handlers"
	"github.com/fbessa/tournament-server/live"
	"github.com/fbessa/tournament-server/repositories"
	api "github.com/fbessa/tournament-server/routes"
	"github.com/fbessa/tournament-server/services"
	"github.com/fbessa/tournament-server/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Postgres when configured, in-memory store otherwise.
	var tournamentRepo repositories.TournamentRepository
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()
		if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
			logger.Error("failed to ensure database schema", slog.Any("error", err))
			os.Exit(1)
		}
		tournamentRepo = repositories.NewPostgresTournamentRepository(dbConn)
		logger.Info("database connection established")
	} else {
		tournamentRepo = repositories.NewMemoryTournamentRepository()
		logger.Warn("DATABASE_URL not set, using in-memory store; state is lost on restart")
	}

	var uploader storage.FileUploader
	if cfg.UploadsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	} else {
		logger.Warn("R2 credentials not set, logo and flag uploads disabled")
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo, uploader, wsHub, logger)
	matchService := services.NewMatchService(tournamentRepo, wsHub)
	conquestService := services.NewConquestService(tournamentRepo, uploader, wsHub)
	dashboardService := services.NewDashboardService(tournamentRepo)
	logger.Info("services initialized")

	// Flip tournaments to ongoing once their start date passes.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("status scheduler started", slog.Duration("interval", schedulerInterval))

		run := func() {
			started, err := tournamentService.AutoStartByDate(context.Background(), time.Now())
			if err != nil {
				logger.Error("scheduler run failed", slog.Any("error", err))
				return
			}
			if started > 0 {
				logger.Info("scheduler started tournaments", slog.Int("count", started))
			}
		}

		run()
		for range ticker.C {
			run()
		}
	}()

	authHandler := handlers.NewAuthHandler(authService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	conquestHandler := handlers.NewConquestHandler(conquestService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		tournamentHandler,
		matchHandler,
		conquestHandler,
		dashboardHandler,
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
