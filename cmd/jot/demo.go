package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/logging"
)

// demoScript walks the three conversational branches in order: two
// adds, a list query over them, and a plain note.
var demoScript = []string{
	"Add eggs and milk to my shopping list",
	"Put bread and butter on the grocery list",
	"What's on my shopping list?",
	"Met Sarah for coffee, she recommended the new bakery on Pine Street",
}

func cmdDemo(g *globalOptions) *cli.Command {
	var llmFlag string

	return &cli.Command{
		Name:  "demo",
		Usage: "Run a scripted conversation against a fresh journal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "llm",
				Usage:       "Model selector as provider/model (e.g. ollama/llama3.2)",
				Destination: &llmFlag,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			resolved, err := g.resolve(config.ResolveOptions{CLILLM: llmFlag})
			if err != nil {
				return err
			}
			engine, err := buildEngine(resolved, logging.Default())
			if err != nil {
				return err
			}

			runDemoScript(ctx, engine, os.Stdout)
			return nil
		},
	}
}

func runDemoScript(ctx context.Context, engine *journal.Engine, w io.Writer) {
	fmt.Fprintln(w, "🧪 jot demo")
	fmt.Fprintln(w)

	for _, message := range demoScript {
		promptStyle.Fprintf(w, "you> %s\n", message)
		reply := engine.HandleMessage(ctx, message)
		printReply(w, reply)
		fmt.Fprintln(w)
	}

	stats := engine.Store().Snapshot()
	metaStyle.Fprintf(w, "%d entries stored, %d with items\n", stats.Entries, stats.EntriesWithItems)

	fmt.Fprintln(w, "\n✅ Demo complete.")
	fmt.Fprintln(w, "Your turn:")
	fmt.Fprintln(w, `  jot say "Add coffee to my shopping list"`)
	fmt.Fprintln(w, "  jot serve    # then open http://localhost:8080")
}
