// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/artpar/japi/domain/note"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers. Used by the envelope sanitation
// pass to assign ids to resource objects that lack one.
type IDGenerator interface {
	New() string
}

// Observer receives one signal per serialized response. Implementations
// must be safe for concurrent use.
type Observer interface {
	// ObserveOutcome records a classified outcome and the status it produced.
	ObserveOutcome(kind string, status int)
}

// Hasher abstracts password hashing.
type Hasher interface {
	// Hash generates a hash from plaintext.
	Hash(plaintext string) ([]byte, error)
	// Compare checks if plaintext matches hash.
	Compare(hash []byte, plaintext string) bool
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// ErrNoteNotFound is returned by NoteStore.Get for unknown IDs.
var ErrNoteNotFound = errors.New("note not found")

// NoteStore persists notes for the demo server.
type NoteStore interface {
	// List returns all notes, newest first.
	List(ctx context.Context) ([]note.Note, error)

	// Get retrieves a note by ID. Returns ErrNoteNotFound if absent.
	Get(ctx context.Context, id string) (note.Note, error)

	// Create stores a new note.
	Create(ctx context.Context, n note.Note) error
}
