package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var gcOlderThan time.Duration

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Remove temp files left behind by interrupted writes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		olderThan := cfg.SweepGrace
		if cmd.Flags().Changed("older-than") {
			olderThan = gcOlderThan
		}

		store := openStore()

		n, err := store.Repository.SweepTemp(context.Background(), olderThan)
		if err != nil {
			fatal("Failed to sweep temp files", err)
		}
		fmt.Printf("Removed %d orphaned temp files from %s.\n", n, store.Path())
	},
}

func init() {
	rootCmd.AddCommand(gcCmd)
	gcCmd.Flags().DurationVar(&gcOlderThan, "older-than", time.Hour, "Only remove temp files older than this")
}
