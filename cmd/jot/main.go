// Command jot is a conversational journal. Say things to it and it
// files them away; ask questions and it answers from what you told it.
// The same engine is reachable over HTTP (serve), MCP (mcp), and
// one-shot CLI turns (say).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/logging"
)

var version = "0.1.0"

func main() {
	if err := run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	g := &globalOptions{}

	app := &cli.Command{
		Name:    "jot",
		Usage:   "Conversational journal: tell it things, ask it questions",
		Version: version,
		Flags:   g.flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			resolved, err := g.resolve(config.ResolveOptions{})
			if err != nil {
				return ctx, err
			}
			// Stdout stays clean for replies and JSON; every surface
			// logs to stderr, including the MCP stdio transport.
			if _, err := logging.Setup(resolved.LogLevel.Value, resolved.LogFormat.Value, os.Stderr); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(g),
			cmdMCP(g),
			cmdSay(g),
			cmdDemo(g),
			cmdImport(g),
			cmdConfig(g),
		},
	}

	return app.Run(ctx, args)
}

// globalOptions are the root-level flags shared by every subcommand.
// The JOT_* environment variables for these settings are layered by the
// config resolver, not by flag Sources, so `jot config` reports the
// true origin of each value.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func (g *globalOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the YAML config file (default: ~/.jot/config.yaml)",
			Destination: &g.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level: debug, info, warn, error",
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format: console or json",
			Destination: &g.logFormat,
		},
	}
}

// resolve layers the shared flags over the file, environment, and
// default settings. Subcommands add their own flags through opts.
func (g *globalOptions) resolve(opts config.ResolveOptions) (config.ResolvedConfig, error) {
	opts.ConfigPath = g.configPath
	opts.CLILogLevel = g.logLevel
	opts.CLILogFormat = g.logFormat
	return config.Resolve(opts)
}
