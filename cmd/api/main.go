package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmetics-store-api/internal/cache"
	"cosmetics-store-api/internal/client"
	"cosmetics-store-api/internal/config"
	"cosmetics-store-api/internal/handler"
	"cosmetics-store-api/internal/logger"
	"cosmetics-store-api/internal/middleware"
	"cosmetics-store-api/internal/repository"
	"cosmetics-store-api/internal/router"
	"cosmetics-store-api/internal/service"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const sessionKeyPrefix = "cosmetics:"

func main() {
	cfg := config.MustLoad()
	logger.Setup(cfg.App.LogLevel, cfg.App.LogFormat, os.Stdout)

	log.WithFields(log.Fields{
		"env":     cfg.App.Environment,
		"version": cfg.App.Version,
	}).Infof("Starting %s", cfg.App.Name)

	// Ledger store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := repository.Open(ctx, cfg.Database.Type, cfg.Database.DSN())
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer store.Close()

	// Session cache: Redis when configured and reachable, memory otherwise
	sessionStore, cacheType := openSessionCache(cfg)
	defer closeCache(sessionStore)

	// Catalog
	upstream := client.NewFortniteClient(client.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		APIKey:   cfg.Upstream.APIKey,
		Language: cfg.Upstream.Language,
		Timeout:  cfg.Upstream.Timeout,
	})
	catalogCache := service.NewCatalogCache(upstream, service.CatalogCacheConfig{
		CatalogTTL: cfg.Upstream.CatalogTTL,
		NewTTL:     cfg.Upstream.NewItemsTTL,
		ShopTTL:    cfg.Upstream.ShopTTL,
	})
	enricher := service.NewCatalogEnricher(service.NewPriceResolver())
	catalogService := service.NewCatalogService(catalogCache, store, enricher, service.NewSearchEngine())

	warmer := service.NewCatalogWarmer(catalogCache, cfg.Upstream.WarmInterval)
	warmer.Start()
	defer warmer.Stop()

	// Accounts and ledger
	sessions := service.NewSessionService(sessionStore, cfg.Session.TTL)
	authService := service.NewAuthService(store, sessions, cfg.Ledger.InitialBalance)
	ledgerService := service.NewLedgerService(store)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	r := router.New(router.Config{
		Handler:          handler.New(cfg.App.Name, cfg.App.Version, store),
		CosmeticsHandler: handler.NewCosmeticsHandler(catalogService),
		InventoryHandler: handler.NewInventoryHandler(ledgerService),
		AuthHandler:      handler.NewAuthHandler(authService),
		UsersHandler:     handler.NewUsersHandler(authService, ledgerService),
		AdminHandler:     handler.NewAdminHandler(catalogCache, store, cacheType),
		Identity:         middleware.Identity(sessions),
		RateLimit:        limiter.Handler,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", cfg.Server.Address()).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown error")
	}

	log.Info("Server stopped")
}

func openSessionCache(cfg *config.Config) (cache.Cache, string) {
	if cfg.Cache.Type != "redis" {
		log.Info("Using in-memory session cache")
		return cache.NewMemoryCache(), "memory"
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddress(),
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	rc := cache.NewRedisCache(redisClient, sessionKeyPrefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.WithError(err).Warn("Redis unreachable, falling back to in-memory session cache")
		_ = rc.Close()
		return cache.NewMemoryCache(), "memory"
	}

	log.WithField("addr", cfg.Cache.RedisAddress()).Info("Redis session cache initialized")
	return rc, "redis"
}

func closeCache(c cache.Cache) {
	if closer, ok := c.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
