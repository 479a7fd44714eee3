// Command routeplanner plans visiting itineraries from the command line,
// using the same planner and model gateway as the API.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/pkg/logger"
)

func main() {
	logger.Init(logger.Config{Pretty: true, Output: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using system environment variables")
	}

	if err := newRootCmd(configuredGateway).Execute(); err != nil {
		os.Exit(1)
	}
}
