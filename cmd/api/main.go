package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/config"
	"blogpress-backend/pkg/container"
	"blogpress-backend/pkg/logger"
)

func main() {
	// .env is optional: real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment)

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build container")
	}
	defer c.Close()

	router := setupRouter(c)

	if err := runServer(router, cfg.App.Port); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
