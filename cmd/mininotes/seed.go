package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <count>",
	Short: "Create placeholder notes for testing",
	Long:  `Creates up to <count> notes titled "Note N". The count is clamped to the configured seed limit.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			count = 0
		}

		store := openStore()

		created, err := store.Seed(context.Background(), count)
		if err != nil {
			fatal(fmt.Sprintf("Seed stopped after %d notes", created), err)
		}
		fmt.Printf("Created %d notes.\n", created)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
