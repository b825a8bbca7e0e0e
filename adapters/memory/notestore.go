// Package memory provides in-memory store implementations for tests and
// zero-configuration demo runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/artpar/japi/domain/note"
	"github.com/artpar/japi/ports"
)

// NoteStore is a thread-safe in-memory note store.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[string]note.Note
}

// NewNoteStore creates an empty in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[string]note.Note)}
}

// List returns all notes, newest first.
func (s *NoteStore) List(ctx context.Context) ([]note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get retrieves a note by ID.
func (s *NoteStore) Get(ctx context.Context, id string) (note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return note.Note{}, ports.ErrNoteNotFound
	}
	return n, nil
}

// Create stores a new note.
func (s *NoteStore) Create(ctx context.Context, n note.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[n.ID] = n
	return nil
}

// Ensure interface compliance.
var _ ports.NoteStore = (*NoteStore)(nil)
