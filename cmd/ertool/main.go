package main

import (
	"emergency-response-service/internal/config"
	"emergency-response-service/internal/platform/obs"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadDotEnv()
	obs.SetupLogger(config.Get("LOG_LEVEL", "warn"), true)

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("ertool")
		os.Exit(1)
	}
}
