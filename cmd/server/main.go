package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecoscore/backend/config"
	httpDelivery "github.com/ecoscore/backend/internal/delivery/http"
	"github.com/ecoscore/backend/internal/domain"
	"github.com/ecoscore/backend/internal/infrastructure/cache"
	"github.com/ecoscore/backend/internal/infrastructure/fetcher"
	"github.com/ecoscore/backend/internal/logger"
	"github.com/ecoscore/backend/internal/metrics"
	"github.com/ecoscore/backend/internal/usecase"
)

const version = "2.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("Server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	log.Info("Starting Eco-Score Backend",
		logger.String("version", version),
		logger.String("environment", cfg.Server.Environment),
		logger.String("port", cfg.Server.Port),
		logger.String("fetcher_mode", cfg.Fetcher.Mode),
		logger.String("cache_type", cfg.Cache.Type),
		logger.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	defer memoryCache.Close()

	scorer := usecase.NewEcoScorer()
	productFetcher := newProductFetcher(cfg, scorer, log)
	m := metrics.New()

	// Initialize usecase layer
	ecoScoreService := usecase.NewEcoScoreService(
		scorer,
		productFetcher,
		memoryCache,
		m,
		log,
		usecase.EcoScoreServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		},
	)

	handler := httpDelivery.NewHandler(ecoScoreService, log)
	router := httpDelivery.SetupRouter(cfg, handler, log, m)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serve(srv, log, cfg.Server.ShutdownTimeout)
}

// newProductFetcher picks the fetcher used when the browser sends too little text
func newProductFetcher(cfg *config.Config, scorer domain.ProductScorer, log logger.Logger) domain.ProductFetcher {
	placeholder := fetcher.NewPlaceholderFetcher()
	if cfg.Fetcher.Mode != config.FetcherModeHTTP {
		return placeholder
	}

	log.Info("Page fetcher enabled",
		logger.Duration("timeout", cfg.Fetcher.Timeout),
		logger.String("user_agent", cfg.Fetcher.UserAgent))

	return fetcher.NewPageFetcher(scorer, placeholder, fetcher.PageFetcherConfig{
		Timeout:           cfg.Fetcher.Timeout,
		UserAgent:         cfg.Fetcher.UserAgent,
		RequestsPerSecond: cfg.Fetcher.RequestsPerSecond,
		Burst:             cfg.Fetcher.Burst,
		MaxRetries:        cfg.Fetcher.MaxRetries,
		MaxTextLength:     cfg.Fetcher.MaxTextLength,
	}, log)
}

// serve runs srv until it fails or SIGINT/SIGTERM arrives, then shuts down gracefully
func serve(srv *http.Server, log logger.Logger, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)

	go func() {
		log.Info("Server listening", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Info("Shutdown signal received", logger.String("signal", sig.String()))
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
