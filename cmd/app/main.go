package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"rental/config"
	"rental/di"
	"rental/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	if err := app.Admin.Bootstrap(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default administrator")
	}

	app.HTTP.Serve()
}
