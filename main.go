package main

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goverland-labs/goverland-grant-updates/internal"
	"github.com/goverland-labs/goverland-grant-updates/internal/config"
)

var (
	cfg config.App
)

func init() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	err := env.Parse(&cfg)
	if err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	zerolog.SetGlobalLevel(level)
}

func main() {
	app, err := internal.NewApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup application")
	}

	app.Run()
}
