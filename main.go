package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"timeline-ai/backend/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:    "timeline-ai",
		Usage:   "Estimate construction timelines from architectural drawings",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
				Value:   "timeline.toml",
				EnvVars: []string{"TIMELINE_CONFIG"},
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			cmd.ServeCommand(),
			cmd.EstimateCommand(),
			cmd.ProfilesCommand(),
			cmd.ConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
