package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/mininotes"
	"github.com/aretw0/mininotes/pkg/core"
	"github.com/aretw0/mininotes/pkg/metrics"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark data directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "mininotes_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	// Direct writes simulate an existing data directory.
	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()
	now := time.Now().UTC()
	for i := 0; i < *count; i++ {
		n := core.Note{
			ID:        uuid.NewString(),
			Title:     fmt.Sprintf("Note %d", i),
			Content:   "This is a benchmark note.",
			CreatedAt: now,
			UpdatedAt: now,
		}
		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(filepath.Join(benchDir, core.FileName(n.ID)), data, 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := mininotes.Open(benchDir, mininotes.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	// Nothing is cached, so both runs read every file.
	run1, err := metrics.Measure(func() ([]core.Note, error) { return store.List(ctx) })
	if err != nil {
		panic(err)
	}
	fmt.Printf("List run 1: %.2fms (Items: %d)\n", run1.Ms, len(run1.Data))

	run2, err := metrics.Measure(func() ([]core.Note, error) { return store.List(ctx) })
	if err != nil {
		panic(err)
	}
	fmt.Printf("List run 2: %.2fms (Items: %d)\n", run2.Ms, len(run2.Data))

	seed, err := metrics.Measure(func() (int, error) { return store.Seed(ctx, core.DefaultSeedLimit) })
	if err != nil {
		panic(err)
	}

	footprint, err := metrics.Footprint(ctx, store)
	if err != nil {
		panic(err)
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  List:  %.2fms / %.2fms\n", run1.Ms, run2.Ms)
	fmt.Printf("  Seed:  %d notes in %.2fms\n", seed.Data, seed.Ms)
	fmt.Printf("  Disk:  %d bytes\n", footprint.DataBytes)
	fmt.Printf("--------------------------------------------------\n")
}
