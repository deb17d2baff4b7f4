package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/config"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/middleware"
	httpapi "github.com/Densingh-123/Home-Services/social-svc/internal/api/http"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
	"github.com/Densingh-123/Home-Services/social-svc/internal/service"
	"github.com/Densingh-123/Home-Services/social-svc/internal/storage"
)

type Config struct {
	config.Common
	config.Store
	config.Redis
	config.Kafka

	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8082"`
	RatingPolicy string        `env:"RATING_POLICY" envDefault:"append"`
	LikeGuardTTL time.Duration `env:"LIKE_GUARD_TTL" envDefault:"5s"`
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		log.Fatal(err)
	}

	logger, err := config.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	policy := domain.RatingPolicy(cfg.RatingPolicy)
	if !policy.Valid() {
		logger.Fatal("invalid RATING_POLICY", zap.String("policy", cfg.RatingPolicy))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	store, closeStore := config.MustOpenStore(ctx, cfg.Store, rdb, logger)
	defer closeStore()

	var publisher service.EngagementPublisher
	if !cfg.Kafka.Disabled {
		writer := config.NewKafkaWriter(cfg.Brokers, cfg.EngagementTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	svc := service.NewMetricsService(service.Dependencies{
		Businesses: storage.NewBusinessRepository(store),
		Likes:      storage.NewLikeRepository(store),
		Ratings:    storage.NewRatingRepository(store),
		Comments:   storage.NewCommentRepository(store),
		Guard:      storage.NewRedisToggleGuard(rdb, cfg.LikeGuardTTL),
		Publisher:  publisher,
		Logger:     logger,
	}, policy)

	handler := httpapi.NewHandler(svc, identity.ContextProvider{}, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, middleware.NewMetrics("social-svc"), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("Social Service starting",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("backend", cfg.Backend),
		zap.String("rating_policy", string(policy)),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
