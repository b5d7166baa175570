package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hurttlocker/jot/internal/config"
)

func cmdConfig(g *globalOptions) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the resolved configuration and where each value came from",
		Action: func(ctx context.Context, c *cli.Command) error {
			resolved, err := g.resolve(config.ResolveOptions{})
			if err != nil {
				return err
			}
			// API keys are masked; the provenance fields stay intact.
			return printJSON(os.Stdout, resolved.Redacted())
		},
	}
}
