package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/mininotes/pkg/adapters/lifecycle"
)

var (
	watchPattern string
	watchTypes   []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note changes as they happen",
	Long:  `Prints one line per change ("CREATE <id>", "MODIFY <id>", "DELETE <id>") until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := openStore()

		events, err := store.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		types, err := lifecycleadapter.ParseEventTypes(watchTypes)
		if err != nil {
			fatal("Invalid --type", err)
		}
		source := lifecycleadapter.NewSource(events, types...)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		slog.Info("watching for changes", "path", store.Path())
		for e := range source.Events() {
			fmt.Println(e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob on file names (default: *.json)")
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only print these change types (create, modify, delete)")
}
