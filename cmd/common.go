package cmd

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"timeline-ai/backend/internal/config"
	"timeline-ai/backend/internal/logging"
)

// loadConfig reads .env, the --config file and the environment, then sets up logging.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.LoadAppConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
