package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"timeline-ai/backend/internal/config"
)

// ConfigCommand returns the config command.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a configuration file with the default settings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "timeline.toml",
					},
				},
				Action: func(c *cli.Context) error {
					path := c.String("output")
					if err := config.InitAppConfig(path); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", path)
					return nil
				},
			},
		},
	}
}
