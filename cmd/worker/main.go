package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/config"
	sitemaprepo "blogpress-backend/internal/domains/sitemap/repository"
	"blogpress-backend/internal/shared"
	"blogpress-backend/pkg/container"
	"blogpress-backend/pkg/logger"
)

// Cron expressions for the scheduled tasks.
const (
	contentSyncSchedule = "0 * * * *" // hourly
	sitemapWarmSchedule = "0 4 * * *" // daily, off-peak
)

func main() {
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

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	handlers := &taskHandlers{
		sync:    c.SyncService,
		warmer:  c.Warmer,
		sitemap: sitemaprepo.NewPostgresRepository(c.DB.Pool),
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeContentSync, handlers.HandleContentSync)
	mux.HandleFunc(shared.TypeSitemapWarm, handlers.HandleSitemapWarm)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			shared.QueueContent: 6,
			shared.QueueDefault: 4,
		},
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	if _, err := scheduler.Register(
		contentSyncSchedule,
		asynq.NewTask(shared.TypeContentSync, nil),
		asynq.Queue(shared.QueueContent),
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to register content sync schedule")
	}

	if _, err := scheduler.Register(
		sitemapWarmSchedule,
		asynq.NewTask(shared.TypeSitemapWarm, nil),
		asynq.Queue(shared.QueueDefault),
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to register sitemap warm schedule")
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info().Msg("Worker server starting")
		if err := srv.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		log.Info().Msg("Scheduler starting")
		if err := scheduler.Run(); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Worker exited with error")
		scheduler.Shutdown()
		srv.Shutdown()
		os.Exit(1)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down worker")
	}

	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
