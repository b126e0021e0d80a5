// Package core holds the note domain: the entity, the storage contract and the
// Service that implements the note lifecycle on top of it.
package core

import (
	"fmt"
	"time"
)

// FileExtension is the suffix of every persisted note record.
const FileExtension = ".json"

// Note is the central entity of the domain.
// Its ID doubles as the file stem of the record that stores it.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput carries the fields of a new note.
type CreateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Patch is a partial update. A nil field is left untouched; a non-nil pointer
// to the empty string clears the field.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// EventType represents the type of change in the data directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a note record observed on disk.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

// FileName derives the record name for a note id.
func FileName(id string) string {
	return id + FileExtension
}
