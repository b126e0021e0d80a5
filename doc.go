// Package mininotes is the composition root of a small file-backed note store.
//
// Each note is a JSON document in its own file inside a single data
// directory. The filesystem is the only source of truth: nothing is cached
// between calls, and every write lands through a temp file and a rename so a
// reader sees either the previous or the next version of a note, never a torn
// one.
//
// Layers:
//
//   - pkg/adapters/fs: the durable file layer (atomic writes, name
//     confinement, fail-closed reads, temp sweeping, change watching).
//   - pkg/core: the record store (create, read, partial update, delete,
//     bulk seed) over any core.Repository.
//   - pkg/ipc: a channel-based request/response boundary with validation
//     and timing, served as line-delimited JSON.
//
// Usage:
//
//	store, err := mininotes.Open("./notes", mininotes.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	note, err := store.Create(ctx, mininotes.CreateInput{Title: "Hello", Content: "World"})
package mininotes
