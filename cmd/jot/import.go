package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/ingest"
	"github.com/hurttlocker/jot/internal/logging"
)

func cmdImport(g *globalOptions) *cli.Command {
	var llmFlag string
	var asJSON bool

	return &cli.Command{
		Name:      "import",
		Usage:     "Replay seed files through a fresh journal and report how they were understood",
		ArgsUsage: "<path> [<path>...]",
		Description: "Storage is in-memory, so import is a dry run for seed files:\n" +
			"it shows what each message would become. Use `jot serve --seed`\n" +
			"to actually serve the seeded journal.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "llm",
				Usage:       "Model selector as provider/model (e.g. ollama/llama3.2)",
				Destination: &llmFlag,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print the replay summary as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("usage: jot import <path> [<path>...]")
			}

			resolved, err := g.resolve(config.ResolveOptions{CLILLM: llmFlag})
			if err != nil {
				return err
			}
			logger := logging.Default()
			engine, err := buildEngine(resolved, logger)
			if err != nil {
				return err
			}

			result, err := ingest.Replay(ctx, engine, paths, logger)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, result)
			}
			printReplayResult(os.Stdout, result)
			return nil
		},
	}
}

func printReplayResult(w io.Writer, result *ingest.Result) {
	fmt.Fprintf(w, "Scanned %d files: %d replayed, %d skipped\n",
		result.FilesScanned, result.FilesReplayed, result.FilesSkipped)
	fmt.Fprintf(w, "Messages: %d (%d added, %d queries, %d notes)\n",
		result.Messages, result.Added, result.Queried, result.Noted)
	for _, e := range result.Errors {
		warnStyle.Fprintf(w, "  %s: %s\n", e.File, e.Message)
	}
}
