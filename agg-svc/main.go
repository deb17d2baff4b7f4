package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Densingh-123/Home-Services/agg-svc/internal/service"
	"github.com/Densingh-123/Home-Services/agg-svc/internal/storage"
	"github.com/Densingh-123/Home-Services/config"
	"github.com/Densingh-123/Home-Services/middleware"
)

type Config struct {
	config.Common
	config.Redis
	config.Kafka

	GroupID      string `env:"KAFKA_GROUP_ID" envDefault:"agg-svc-consumer"`
	SocialSvcURL string `env:"SOCIAL_SVC_URL" envDefault:"http://localhost:8082"`
	MetricsAddr  string `env:"METRICS_ADDR" envDefault:":9102"`
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

	reader := config.NewKafkaReader(cfg.Brokers, cfg.EngagementTopic, cfg.GroupID)
	defer reader.Close()

	metrics := middleware.NewMetrics("agg-svc")
	consumer := service.NewConsumer(reader, storage.NewRedisStore(rdb), storage.NewSocialClient(cfg.SocialSvcURL), logger)
	consumer.Metrics = service.NewConsumerMetrics()
	metrics.Register(consumer.Metrics.Events)

	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"agg-svc"}`))
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	logger.Info("Aggregation Service starting",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.EngagementTopic),
		zap.String("metrics_addr", cfg.MetricsAddr),
	)
	if err := g.Wait(); err != nil {
		logger.Fatal("aggregation service stopped", zap.Error(err))
	}
}
