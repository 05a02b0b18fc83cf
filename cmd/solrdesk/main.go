package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/config"
	"github.com/kailas-cloud/solrdesk/internal/db"
	"github.com/kailas-cloud/solrdesk/internal/db/memory"
	dbRedis "github.com/kailas-cloud/solrdesk/internal/db/redis"
	logpkg "github.com/kailas-cloud/solrdesk/internal/logger"
	"github.com/kailas-cloud/solrdesk/internal/metrics"
	prefsrepo "github.com/kailas-cloud/solrdesk/internal/repository/preferences"
	chiTransport "github.com/kailas-cloud/solrdesk/internal/transport/chi"
	"github.com/kailas-cloud/solrdesk/internal/transport/solrapi"
	collectionuc "github.com/kailas-cloud/solrdesk/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/solrdesk/internal/usecase/health"
	preferencesuc "github.com/kailas-cloud/solrdesk/internal/usecase/preferences"
	searchuc "github.com/kailas-cloud/solrdesk/internal/usecase/search"
	translationuc "github.com/kailas-cloud/solrdesk/internal/usecase/translation"
	"github.com/kailas-cloud/solrdesk/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting solrdesk",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Strings("store_addrs", cfg.Store.Addrs),
	)

	ctx := context.Background()

	store, err := newStore(cfg.Store)
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	readiness := time.Duration(cfg.Store.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register upstream metrics explicitly (no init())
	metrics.RegisterUpstreamMetrics()

	client, err := solrapi.NewClient(&solrapi.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.UpstreamTimeout(),
		RetryMax:  cfg.Upstream.RetryMax,
		RetryWait: cfg.UpstreamRetryWait(),
		Logger:    logger.Named("solrapi"),
	})
	if err != nil {
		logger.Fatal("Failed to create index API client", zap.Error(err))
	}
	if cfg.Upstream.PingOnStart {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.UpstreamTimeout())
		if err := client.Ping(pingCtx); err != nil {
			// the desk still serves translations and preferences without search
			logger.Warn("Index API not reachable", zap.Error(err))
		}
		cancel()
	}

	// Use case services
	prefsSvc := preferencesuc.New(prefsrepo.New(store, cfg.Store.KeyPrefix, cfg.PreferencesTTL()))
	collSvc := collectionuc.New(client, cfg.CollectionsTTL())
	trSvc := translationuc.New(client, cfg.TranslationsTTL())
	searchSvc := searchuc.New(prefsSvc, cfg.Search.MaxParallelFetches)
	sessions := searchuc.NewSessions(client, cfg.Search.PageSize, cfg.SessionTTL())
	healthSvc := healthuc.New(store, client)

	server := chiTransport.NewServer(collSvc, searchSvc, sessions, trSvc, prefsSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully", zap.Int("open_sessions", sessions.Count()))
}

// newStore picks the preferences backend. Redis and Valkey share the rueidis store.
func newStore(cfg config.StoreConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Addrs,
			Username:   cfg.Username,
			Password:   cfg.Password,
			DB:         cfg.DB,
			Standalone: len(cfg.Addrs) == 1,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
