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
	httpapi "github.com/Densingh-123/Home-Services/directory-svc/internal/api/http"
	"github.com/Densingh-123/Home-Services/directory-svc/internal/service"
	"github.com/Densingh-123/Home-Services/directory-svc/internal/storage"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/middleware"
)

type Config struct {
	config.Common
	config.Store
	config.Redis
	config.Kafka

	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8081"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	QRCodeSize    int    `env:"QRCODE_SIZE" envDefault:"256"`
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	store, closeStore := config.MustOpenStore(ctx, cfg.Store, rdb, logger)
	defer closeStore()

	var publisher service.EventPublisher
	if !cfg.Kafka.Disabled {
		writer := config.NewKafkaWriter(cfg.Brokers, cfg.EngagementTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	businessRepo := storage.NewBusinessRepository(store)
	cartRepo := storage.NewCartRepository(store)

	businesses := service.NewBusinessService(
		businessRepo,
		cartRepo,
		storage.NewRedisLeaderboard(rdb),
		publisher,
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL, Size: cfg.QRCodeSize},
		logger,
	)
	categories := service.NewCategoryService(storage.NewCategoryRepository(store))
	cart := service.NewCartService(cartRepo, businessRepo)

	sliders := service.NewSliderService(storage.NewSliderRepository(store))
	handler := httpapi.NewHandler(businesses, categories, sliders, cart, identity.ContextProvider{}, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, middleware.NewMetrics("directory-svc"), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("Directory Service starting",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("backend", cfg.Backend),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
