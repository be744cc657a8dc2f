package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kitbuilder587/newsdesk/internal/backend"
	"github.com/kitbuilder587/newsdesk/internal/config"
	"github.com/kitbuilder587/newsdesk/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadClient()

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	client := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.Timeout,
	}, logger)

	app := tui.New(tui.Deps{
		Gateway: client,
		Logger:  logger,
	})

	if err := app.Run(context.Background()); err != nil {
		logger.Fatal("client exited", zap.Error(err))
	}
}
