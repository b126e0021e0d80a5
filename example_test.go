package mininotes_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/mininotes"
)

// Example_basic demonstrates opening a store, saving a note and reading it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "mininotes-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := mininotes.Open(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	note, err := store.Create(ctx, mininotes.CreateInput{Title: "  Hello  ", Content: "first note"})
	if err != nil {
		log.Fatal(err)
	}

	got, err := store.Get(ctx, note.ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found note: %s\n", got.Title)
	// Output:
	// Found note: Hello
}

// Example_partialUpdate shows that fields absent from a patch are kept.
func Example_partialUpdate() {
	tmpDir, err := os.MkdirTemp("", "mininotes-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := mininotes.Open(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	note, _ := store.Create(ctx, mininotes.CreateInput{Title: "A", Content: "x"})

	content := "y"
	updated, err := store.Update(ctx, note.ID, mininotes.Patch{Content: &content})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(updated.Title, updated.Content)

	if store.Delete(ctx, note.ID) {
		_, err = store.Get(ctx, note.ID)
		fmt.Println(errors.Is(err, mininotes.ErrNotFound))
	}
	// Output:
	// A y
	// true
}
