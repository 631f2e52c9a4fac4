package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"timeline-ai/backend/internal/app"
)

// ProfilesCommand returns the CLI command listing rule profiles.
func ProfilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "List the registered business rule profiles",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			store, err := app.NewProfileStore(cfg)
			if err != nil {
				return err
			}
			for _, p := range store.List() {
				marker := " "
				if p.ID == store.DefaultID() {
					marker = "*"
				}
				fmt.Fprintf(c.App.Writer, "%s %-20s %s\n", marker, p.ID, p.DisplayName)
			}
			return nil
		},
	}
}
