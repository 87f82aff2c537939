package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/akyriacou/cryptosage/internal/clientdata"
	"github.com/akyriacou/cryptosage/internal/clients/coingecko"
	"github.com/akyriacou/cryptosage/internal/config"
	"github.com/akyriacou/cryptosage/internal/database"
	"github.com/akyriacou/cryptosage/internal/modules/advisor"
	"github.com/akyriacou/cryptosage/internal/modules/sustainability"
	"github.com/akyriacou/cryptosage/internal/scheduler"
	"github.com/akyriacou/cryptosage/internal/server"
	"github.com/akyriacou/cryptosage/pkg/logger"
)

func main() {
	// Load configuration first so the log level is honored from the start
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting CryptoSage")

	// Cache database
	db, err := database.Open(cfg.CacheDBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer db.Close()

	cacheRepo := clientdata.NewRepository(db.Conn())
	if err := cacheRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	// Market data client
	baseURL := cfg.CoinGeckoBaseURL
	if baseURL == "" {
		baseURL = coingecko.DefaultBaseURL
	}
	marketClient := coingecko.NewClient(baseURL, cacheRepo, log)

	// Core services
	scorer := sustainability.NewScorer(sustainability.DefaultWeights)
	engine := advisor.New(marketClient, scorer, advisor.DefaultRiskProfiles, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := registerJobs(sched, cacheRepo, marketClient, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Provider:  marketClient,
		Engine:    engine,
		Scorer:    scorer,
		CacheRepo: cacheRepo,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(sched *scheduler.Scheduler, cacheRepo *clientdata.Repository, client *coingecko.Client, log zerolog.Logger) error {
	// Expired cache rows are purged hourly
	if err := sched.AddJob("@hourly", clientdata.NewCleanupJob(cacheRepo, log)); err != nil {
		return err
	}

	// The warmup keeps the hottest upstream responses fresh
	return sched.AddJob("0 */5 * * * *", coingecko.NewWarmupJob(client, log))
}
