package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"channelhub/config"
	"channelhub/internal/application/usecase"
	"channelhub/internal/infrastructure/cache"
	"channelhub/internal/infrastructure/monitoring"
	"channelhub/internal/infrastructure/repository"
	"channelhub/internal/middleware"
	transport "channelhub/internal/transport/http"
	"channelhub/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	db, err := repository.Open(cfg.DSN())
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zl.Fatal("failed to connect to redis", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	txManager := repository.NewTxManager(db)
	channelCache := cache.NewChannelCache(rdb, cfg.CacheTTL(), zl)
	collector := monitoring.NewPrometheusCollector(prometheus.DefaultRegisterer)
	rateLimiter := middleware.NewRateLimiter(rdb, middleware.Config{
		Max:    cfg.RateLimitMax,
		Window: cfg.RateLimitWindow(),
	}, zl)

	membership := usecase.NewMembershipUseCase(repos, txManager, channelCache, zl)

	userHandler := transport.NewUserHandler(membership, collector, zl)
	channelHandler := transport.NewChannelHandler(membership, collector, zl)

	router := transport.NewRouter(transport.RouterConfig{
		AppEnv:       cfg.AppEnv,
		RateLimitMax: cfg.RateLimitMax,
	}, userHandler, channelHandler, rateLimiter, collector, zl)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zl.Error("http server shutdown failed", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		zl.Error("redis close failed", zap.Error(err))
	}
	zl.Info("shutdown complete")
}
