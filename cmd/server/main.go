package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/database"
	"github.com/jxdata/portal/internal/handler"
	"github.com/jxdata/portal/internal/logger"
	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/repository"
	"github.com/jxdata/portal/internal/router"
	"github.com/jxdata/portal/internal/service"
	"github.com/jxdata/portal/internal/validator"
	"github.com/jxdata/portal/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("quiz_store", cfg.QuizStore).
		Msg("Starting JXData Portal")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Page Content ─────────────────────────────────────────────
	catalog, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load content catalog")
	}

	engine, err := quiz.NewEngine(catalog.Questions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build quiz engine")
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	leadRepo := repository.NewLeadRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	var quizStore service.QuizSessionStore
	switch cfg.QuizStore {
	case config.QuizStoreMemory:
		quizStore = repository.NewQuizSessionMemoryRepository(cfg.QuizMemorySize, cfg.QuizSessionTTL)
	default:
		quizStore = repository.NewQuizSessionRedisRepository(rdb, cfg.QuizSessionTTL)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	visitorService := service.NewVisitorService(cfg)
	quizService := service.NewQuizService(engine, quizStore, log)
	leadService := service.NewLeadService(rdb, quizService, log)
	settingService := service.NewSettingService(settingRepo, catalog, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Page:    handler.NewPageHandler(catalog, quizService, settingService, leadService, log),
		Quiz:    handler.NewQuizHandler(quizService, log),
		Lead:    handler.NewLeadHandler(leadService),
		Setting: handler.NewSettingHandler(settingService),
		Catalog: handler.NewCatalogHandler(catalog),
		WS:      handler.NewWSHandler(quizService, log, cfg.AllowedOrigins),
		System:  handler.NewSystemHandler(rdb, pool, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	leadWorker := worker.NewLeadWorker(leadRepo, rdb, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		leadWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, visitorService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the lead queue to drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
