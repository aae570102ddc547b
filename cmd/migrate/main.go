package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"linkhub/internal/pkg/logger"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/database"
	"linkhub/migrations"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	dryRun := flag.Bool("dry-run", false, "List pending migrations without applying them")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	ctx := context.Background()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	pending, err := database.Pending(ctx, db, migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list migrations")
	}

	if len(pending) == 0 {
		fmt.Println("Database is up to date")
		return
	}

	for _, file := range pending {
		fmt.Printf("pending: %s\n", file)
	}
	if *dryRun {
		return
	}

	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	fmt.Println("Migration completed successfully")
}
