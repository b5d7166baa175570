package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/logging"
)

var (
	promptStyle = color.New(color.FgCyan, color.Bold)
	replyStyle  = color.New(color.FgGreen)
	metaStyle   = color.New(color.Faint)
	warnStyle   = color.New(color.FgYellow)
)

func cmdSay(g *globalOptions) *cli.Command {
	var llmFlag string
	var asJSON bool

	return &cli.Command{
		Name:      "say",
		Usage:     "Send one message to the journal and print the reply",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "llm",
				Usage:       "Model selector as provider/model (e.g. ollama/llama3.2)",
				Destination: &llmFlag,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print the full reply as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			message := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if message == "" {
				return fmt.Errorf("usage: jot say <message>")
			}

			resolved, err := g.resolve(config.ResolveOptions{CLILLM: llmFlag})
			if err != nil {
				return err
			}
			engine, err := buildEngine(resolved, logging.Default())
			if err != nil {
				return err
			}

			reply := engine.HandleMessage(ctx, message)
			if asJSON {
				return printJSON(os.Stdout, reply)
			}
			printReply(os.Stdout, reply)
			return nil
		},
	}
}

// printReply renders one reply: the text, then a faint line naming the
// intent and any items involved.
func printReply(w io.Writer, reply *journal.Reply) {
	replyStyle.Fprintln(w, reply.Text)
	if len(reply.Items) > 0 {
		metaStyle.Fprintf(w, "  intent=%s items=%s\n", reply.Intent, strings.Join(reply.Items, ", "))
		return
	}
	metaStyle.Fprintf(w, "  intent=%s\n", reply.Intent)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
