package main

import (
	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/di"
	"carshare/helper"
	"carshare/shared/logger"
	"carshare/shared/timezone"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)

	logger.SetLogLevel(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("Unknown timezone, falling back to UTC")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
