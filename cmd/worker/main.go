package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"linkhub/internal/engine/appearance"
	"linkhub/internal/engine/tracking"
	"linkhub/internal/pkg/logger"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/database"
	"linkhub/internal/platform/events"
	"linkhub/internal/workers"
	"linkhub/migrations"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log.Info().Msg("Starting linkhub background workers")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	var wg sync.WaitGroup

	if cfg.Events.Driver == "nats" {
		nc, js, err := events.Connect(cfg.Events)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.Events.NATSURL).Msg("Failed to connect to NATS")
		}
		defer nc.Drain()

		consumer := tracking.NewConsumer(js, cfg.Events, tracking.NewStore(db))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("Event consumer stopped")
				stop()
			}
		}()
	} else {
		log.Info().Msg("Event consumer disabled (events.driver is not nats)")
	}

	appearanceService := appearance.NewService(appearance.NewRepository(db))
	wg.Add(1)
	go func() {
		defer wg.Done()
		workers.Every(ctx, workers.ColorCleanup(appearanceService, cfg.Worker.ColorCleanupInterval))
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down workers")
	wg.Wait()
}
