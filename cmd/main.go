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

	"github.com/debatetab/tab-system/config"
	"github.com/debatetab/tab-system/db"
	"github.com/debatetab/tab-system/draw"
	"github.com/debatetab/tab-system/handlers"
	"github.com/debatetab/tab-system/realtime"
	"github.com/debatetab/tab-system/repositories"
	api "github.com/debatetab/tab-system/routes"
	"github.com/debatetab/tab-system/services"
	"github.com/debatetab/tab-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const sweeperInterval = 30 * time.Second // How often the resolution sweeper runs

// @title          Debate Tab System API
// @version        1.0
// @description    Pairing generation, score tabulation and standings for debate tournaments.
// @BasePath       /
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
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

	// Инициализация загрузчика файлов (Cloudflare R2)
	uploader, err := storage.NewR2Uploader(storage.R2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	memberRepo := repositories.NewPostgresMemberRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	adminCache := services.NewAdminStatusCache(5*time.Minute, nil)
	authService := services.NewAuthService(userRepo, adminCache)
	emailService := services.NewEmailService(cfg)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, roundRepo, uploader, logger)
	teamService := services.NewTeamService(teamRepo, memberRepo, tournamentRepo, userRepo)
	roundService := services.NewRoundService(roundRepo, tournamentRepo)

	generators := []draw.Generator{
		draw.NewRandomGenerator(nil),
		draw.NewPowerPairedGenerator(),
	}
	drawService := services.NewDrawService(
		dbConn,
		roundRepo,
		tournamentRepo,
		teamRepo,
		matchRepo,
		resultRepo,
		memberRepo,
		generators,
		wsHub,
		emailService,
		logger,
	)
	resultService := services.NewResultService(
		dbConn,
		matchRepo,
		memberRepo,
		roundRepo,
		tournamentRepo,
		scoreRepo,
		resultRepo,
		wsHub,
		logger,
	)
	standingsService := services.NewStandingsService(tournamentRepo, teamRepo, memberRepo, scoreRepo, resultRepo)
	logger.Info("services initialized")

	// Фоновый цикл дорасчёта результатов: подхватывает матчи, чьи
	// оценки доехали после последней явной отправки.
	go func() {
		ticker := time.NewTicker(sweeperInterval)
		defer ticker.Stop()
		logger.Info("result resolution sweeper started", slog.Duration("interval", sweeperInterval))

		for range ticker.C {
			sweepPendingResults(context.Background(), logger, tournamentRepo, roundRepo, resultService)
		}
	}()

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, emailService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	roundHandler := handlers.NewRoundHandler(roundService)
	drawHandler := handlers.NewDrawHandler(drawService)
	scoreHandler := handlers.NewScoreHandler(resultService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, tournamentService, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authService,
		authHandler,
		tournamentHandler,
		teamHandler,
		roundHandler,
		drawHandler,
		scoreHandler,
		standingsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
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

func sweepPendingResults(
	ctx context.Context,
	logger *slog.Logger,
	tournamentRepo repositories.TournamentRepository,
	roundRepo repositories.RoundRepository,
	resultService services.ResultService,
) {
	tournaments, err := tournamentRepo.List(ctx, true)
	if err != nil {
		logger.Error("sweeper: failed to list tournaments", slog.Any("error", err))
		return
	}

	for _, tournament := range tournaments {
		rounds, err := roundRepo.ListByTournament(ctx, tournament.ID)
		if err != nil {
			logger.Error("sweeper: failed to list rounds",
				slog.Int("tournament_id", tournament.ID), slog.Any("error", err))
			continue
		}
		for _, round := range rounds {
			if round.Completed {
				continue
			}
			resolved, err := resultService.ResolvePendingForRound(ctx, round.ID)
			if err != nil {
				logger.Error("sweeper: failed to resolve round",
					slog.Int("round_id", round.ID), slog.Any("error", err))
				continue
			}
			if resolved > 0 {
				logger.Info("sweeper: resolved pending matches",
					slog.Int("round_id", round.ID), slog.Int("count", resolved))
			}
		}
	}
}
