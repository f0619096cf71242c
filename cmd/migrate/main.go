package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/phexara/phexara-api/internal/config"
	"github.com/phexara/phexara-api/internal/pkg/database"
	"github.com/phexara/phexara-api/internal/pkg/logger"
	"github.com/phexara/phexara-api/internal/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset")
	version := flag.String("version", "", "target version for -cmd=version; empty prints the current version")
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL, "writer")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx := context.Background()

	if *cmd == "version" && *version != "" {
		if err := migrate.MigrateToVersion(ctx, db.DB, *version); err != nil {
			fmt.Fprintf(os.Stderr, "migrate to %s failed: %v\n", *version, err)
			os.Exit(1)
		}
		log.Info().Str("version", *version).Msg("Migrated to version")
		return
	}

	if err := migrate.Run(ctx, db.DB, *cmd); err != nil {
		fmt.Fprintf(os.Stderr, "migration %s failed: %v\n", *cmd, err)
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("Migration command finished")
}
