package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/logging"
	"github.com/hurttlocker/jot/internal/mcp"
)

func cmdMCP(g *globalOptions) *cli.Command {
	var llmFlag string
	var maxItems string

	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the journal over MCP on stdin/stdout",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "llm",
				Usage:       "Model selector as provider/model (e.g. ollama/llama3.2)",
				Destination: &llmFlag,
			},
			&cli.StringFlag{
				Name:        "max-items",
				Usage:       "Cap on items from the fallback extractor",
				Destination: &maxItems,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			resolved, err := g.resolve(config.ResolveOptions{
				CLILLM:      llmFlag,
				CLIMaxItems: maxItems,
			})
			if err != nil {
				return err
			}
			logger := logging.Default()

			engine, err := buildEngine(resolved, logger)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerConfig{Engine: engine, Version: version})
			logger.Info("mcp server listening on stdio", "version", version)
			if err := mcp.ServeStdio(ctx, srv, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
