package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/mininotes"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mininotes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mininotes version %s\n", mininotes.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
