package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hsakai921/clinicharvester/config"
	"hsakai921/clinicharvester/internal/discovery"
	"hsakai921/clinicharvester/internal/fetcher"
	"hsakai921/clinicharvester/logger"
	"hsakai921/clinicharvester/pkg/errors"
	"hsakai921/clinicharvester/services/cache"
	"hsakai921/clinicharvester/services/ingest"
	"hsakai921/clinicharvester/services/publisher"
	"hsakai921/clinicharvester/services/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Msg("Starting harvest run")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Destination store
	st, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer st.Close()
	log.Info().Str("host", cfg.DBHost).Int("port", cfg.DBPort).Msg("Connected to MySQL")

	// Optional probe cache
	var cacheSvc cache.ProbeCache
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheProbeCache(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Probe cache enabled")
	}

	// Optional side publisher
	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
		defer redisPub.Close()
		pub = redisPub
		log.Info().Str("addr", cfg.RedisAddr).Str("stream", cfg.RedisStream).Msg("Side publisher enabled")
	}

	f := fetcher.New(cfg.FetchTimeout)
	resolver := discovery.New(cfg, f, cacheSvc)
	ing := ingest.New(cfg, resolver, f, st, pub)

	if err := ing.Run(ctx); err != nil {
		if serr, ok := errors.AsScrapeError(err); ok && !serr.IsFatal() {
			log.Warn().Err(err).Msg("Harvest run ended with a recovered error")
			return
		}
		log.Fatal().Err(err).Msg("Harvest run failed")
	}
}
