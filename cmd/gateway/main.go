package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/newsdesk/internal/config"
	"github.com/kitbuilder587/newsdesk/internal/gateway"
	"github.com/kitbuilder587/newsdesk/internal/metrics"
	"github.com/kitbuilder587/newsdesk/internal/newsapi"
	"github.com/kitbuilder587/newsdesk/internal/ratelimit"
)

func main() {
	// .env is optional, deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	news := newsapi.New(newsapi.Config{
		APIKey:  cfg.NewsAPI.APIKey,
		BaseURL: cfg.NewsAPI.BaseURL,
		Timeout: cfg.NewsAPI.Timeout,
	}, logger)

	var limiter *ratelimit.Limiter
	if cfg.Server.RateLimitPerMin > 0 {
		limiter = ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.Server.RateLimitPerMin})
	}

	server := gateway.New(gateway.Deps{
		Config:  cfg,
		News:    news,
		Logger:  logger,
		Metrics: metrics.New(),
		Limiter: limiter,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gateway listening", zap.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down gateway")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}
