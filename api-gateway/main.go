package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/api-gateway/internal/gateway"
	"github.com/Densingh-123/Home-Services/config"
	"github.com/Densingh-123/Home-Services/identity"
	"github.com/Densingh-123/Home-Services/middleware"
)

type Config struct {
	config.Common

	HTTPAddr        string   `env:"HTTP_ADDR" envDefault:":8080"`
	JWTSecret       string   `env:"JWT_SECRET,required"`
	SocialSvcURL    string   `env:"SOCIAL_SVC_URL" envDefault:"http://localhost:8082"`
	DirectorySvcURL string   `env:"DIRECTORY_SVC_URL" envDefault:"http://localhost:8081"`
	AllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:8080,http://127.0.0.1:8080" envSeparator:","`
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

	gw := gateway.NewGateway(gateway.Config{
		SocialSvcURL:    cfg.SocialSvcURL,
		DirectorySvcURL: cfg.DirectorySvcURL,
	}, &http.Client{Timeout: 15 * time.Second}, identity.NewJWTVerifier(cfg.JWTSecret), logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           c.Handler(gw.SetupRoutes(middleware.NewMetrics("api-gateway"))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("API Gateway starting",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("social_svc", cfg.SocialSvcURL),
		zap.String("directory_svc", cfg.DirectorySvcURL),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
