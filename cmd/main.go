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
	_ "github.com/lib/pq"
	"github.com/tippliga/tournament-engine/config"
	"github.com/tippliga/tournament-engine/db"
	"github.com/tippliga/tournament-engine/handlers"
	"github.com/tippliga/tournament-engine/live"
	"github.com/tippliga/tournament-engine/provider"
	"github.com/tippliga/tournament-engine/repositories"
	api "github.com/tippliga/tournament-engine/routes"
	"github.com/tippliga/tournament-engine/services"
)

const migrationsPath = "db/migrations"

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

	if err := db.Migrate(cfg.DatabaseURL, migrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	betRepo := repositories.NewPostgresBetRepository(dbConn)
	logger.Info("repositories initialized")

	resultsProvider := provider.NewHTTPClient(cfg.ResultsProviderURL)

	tournamentService := services.NewTournamentService(tournamentRepo, groupRepo)
	standingsService := services.NewStandingsService(matchRepo, groupRepo)
	bracketService := services.NewBracketService(dbConn, matchRepo, groupRepo, wsHub, logger)
	scoringService := services.NewScoringService(dbConn, matchRepo, betRepo)
	matchService := services.NewMatchService(
		dbConn,
		matchRepo,
		teamRepo,
		bracketService,
		scoringService,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	pollCtx, cancelPoll := context.WithCancel(context.Background())
	defer cancelPoll()
	poller := services.NewPollerService(
		time.Duration(cfg.PollInterval)*time.Second,
		tournamentRepo,
		matchRepo,
		groupRepo,
		matchService,
		resultsProvider,
		logger,
	)
	go poller.Run(pollCtx)

	tournamentHandler := handlers.NewTournamentHandler(tournamentService, matchService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	matchHandler := handlers.NewMatchHandler(matchService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, tournamentHandler, standingsHandler, matchHandler, webSocketHandler)
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
		cancelPoll()

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
