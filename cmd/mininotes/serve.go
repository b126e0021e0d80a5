package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/mininotes/pkg/ipc"
)

var serveNoWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer line-delimited JSON requests on stdin",
	Long: `Reads one JSON request per line from stdin, e.g.

  {"seq":1,"channel":"notes:create","args":[{"title":"A","content":"x"}]}

and writes one response per line to stdout:

  {"seq":1,"ok":true,"data":{...},"ms":0.42}

Requests are handled one at a time. Logs go to stderr.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		logger := slog.Default()
		store := openStore()
		handler := ipc.NewHandler(store, logger)

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			// Stdin closing ends the session.
			defer cancel()
			return ipc.Serve(ctx, handler, os.Stdin, os.Stdout)
		})

		if !serveNoWatch {
			events, err := store.Watch(ctx, "")
			if err != nil {
				fatal("Failed to start watcher", err)
			}
			g.Go(func() error {
				for e := range events {
					logger.Info("note changed", "type", e.Type, "id", e.ID)
				}
				return nil
			})
		}

		logger.Info("serving", "path", store.Path())
		if err := g.Wait(); err != nil {
			fatal("Server stopped", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not log data directory changes")
}
