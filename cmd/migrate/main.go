package main

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"reelshelf/internal/config"
	"reelshelf/internal/logging"
	"reelshelf/internal/store"
)

func main() {
	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("usage: migrate [up|down]")
	}

	cfg, err := config.Load("config/local.env", ".env")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger, closer := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	defer closer.Close()

	if cfg.Database.URL == "" {
		logger.Fatal().Msg("DATABASE_URL env var is required")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	direction := store.Direction(os.Args[1])
	if err := store.Migrate(db, direction); err != nil {
		logger.Fatal().Err(err).Str("direction", string(direction)).Msg("run migrations")
	}
	logger.Info().Str("direction", string(direction)).Msg("migrations applied successfully")
}
