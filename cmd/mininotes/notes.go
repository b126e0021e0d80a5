package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aretw0/mininotes"
)

var (
	listJSON bool

	noteTitle   string
	noteContent string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		notes, err := store.List(context.Background())
		if err != nil {
			fatal("Failed to list notes", err)
		}
		slices.SortFunc(notes, func(a, b mininotes.Note) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})

		if listJSON {
			printJSON(notes)
			return
		}

		for _, n := range notes {
			fmt.Printf("%s  %s\n", n.ID, n.Title)
		}
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a note as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		note, err := store.Get(context.Background(), args[0])
		if err != nil {
			fatal("Failed to get note", err)
		}
		printJSON(note)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		note, err := store.Create(context.Background(), mininotes.CreateInput{
			Title:   noteTitle,
			Content: noteContent,
		})
		if err != nil {
			fatal("Failed to create note", err)
		}
		printJSON(note)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the title and/or content of a note",
	Long:  `Only the fields passed as flags are changed. Passing an empty value clears a field.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var patch mininotes.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &noteTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &noteContent
		}
		if patch.IsEmpty() {
			fatal("Nothing to update", errors.New("pass --title and/or --content"))
		}

		store := openStore()

		note, err := store.Update(context.Background(), args[0], patch)
		if err != nil {
			fatal("Failed to update note", err)
		}
		printJSON(note)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		if !store.Delete(context.Background(), args[0]) {
			fatal("Failed to delete note", mininotes.ErrNotFound)
		}
		fmt.Printf("Note '%s' deleted.\n", args[0])
	},
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fatal("Failed to encode JSON", err)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	createCmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	createCmd.Flags().StringVar(&noteContent, "content", "", "Note content")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("content")

	updateCmd.Flags().StringVar(&noteTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&noteContent, "content", "", "New content")
}
