package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"timeline-ai/backend/internal/app"
	"timeline-ai/backend/internal/features/estimation/domain"
	rulesdomain "timeline-ai/backend/internal/features/rules/domain"
)

// EstimateCommand returns the CLI command for a one-off estimation.
func EstimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate a project timeline for one drawing and print it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file-url",
				Aliases:  []string{"u"},
				Usage:    "Publicly reachable URL of the drawing",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Rule profile id",
			},
			&cli.StringFlag{
				Name:  "rules",
				Usage: "YAML or JSON business rules `FILE` overriding the profile",
			},
		},
		Action: runEstimate,
	}
}

func runEstimate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	req := domain.AnalyseRequest{
		FileURL:   c.String("file-url"),
		ProfileID: c.String("profile"),
	}
	if path := c.String("rules"); path != "" {
		rules, err := readRulesFile(path)
		if err != nil {
			return err
		}
		req.BusinessRules = rules
	}

	a, err := app.New(c.Context, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	estimate, err := a.Estimation.Estimate(c.Context, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(domain.AnalyseResponse{
		Timeline: estimate.Timeline,
		Warnings: estimate.WarningMessages(),
	})
}

// readRulesFile accepts YAML, which includes JSON.
func readRulesFile(path string) (*rulesdomain.BusinessRulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	var rules rulesdomain.BusinessRulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return &rules, nil
}
