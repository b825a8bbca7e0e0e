package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/artpar/japi/domain/note"
	"github.com/artpar/japi/ports"
)

// NoteStore persists notes in SQLite.
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a note store backed by db.
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// List returns all notes, newest first.
func (s *NoteStore) List(ctx context.Context) ([]note.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, body, created_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Get retrieves a note by ID.
func (s *NoteStore) Get(ctx context.Context, id string) (note.Note, error) {
	var n note.Note
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, created_at
		FROM notes
		WHERE id = ?
	`, id).Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return note.Note{}, ports.ErrNoteNotFound
	}
	if err != nil {
		return note.Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Create stores a new note.
func (s *NoteStore) Create(ctx context.Context, n note.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, body, created_at)
		VALUES (?, ?, ?, ?)
	`, n.ID, n.Title, n.Body, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ ports.NoteStore = (*NoteStore)(nil)
