package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/httpapi"
	"github.com/hurttlocker/jot/internal/ingest"
	"github.com/hurttlocker/jot/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(g *globalOptions) *cli.Command {
	var (
		addr     string
		llmFlag  string
		maxItems string
		seeds    []string
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP journal server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "HTTP listen address",
				Destination: &addr,
			},
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
			&cli.StringSliceFlag{
				Name:        "seed",
				Usage:       "Seed file or directory replayed into the journal before listening (repeatable)",
				Sources:     cli.EnvVars("JOT_SEED"),
				Destination: &seeds,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			resolved, err := g.resolve(config.ResolveOptions{
				CLIAddr:     addr,
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

			var seedPaths []string
			for _, s := range seeds {
				if s = strings.TrimSpace(s); s != "" {
					seedPaths = append(seedPaths, s)
				}
			}
			if len(seedPaths) > 0 {
				result, err := ingest.Replay(ctx, engine, seedPaths, logger)
				if err != nil {
					return fmt.Errorf("replaying seeds: %w", err)
				}
				logger.Info("seed replay finished",
					"files", result.FilesReplayed,
					"skipped", result.FilesSkipped,
					"messages", result.Messages,
					"added", result.Added,
					"errors", len(result.Errors),
				)
			}

			api := httpapi.New(engine, httpapi.WithVersion(version))
			srv := &http.Server{
				Addr:              resolved.Addr.Value,
				Handler:           api,
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logger.Info("http server listening", "addr", srv.Addr, "version", version)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutting down: %w", err)
				}
				logger.Info("server stopped")
				return nil
			})
			return eg.Wait()
		},
	}
}
