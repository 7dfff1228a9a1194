package repository

import (
	"context"

	"github.com/and161185/notekeeper/internal/model"
	"github.com/gofrs/uuid/v5"
)

// NoteRepository provides user-scoped access to notes and their version history.
type NoteRepository interface {
	// List returns the user's notes matching the filter, most recently updated first.
	List(ctx context.Context, userID uuid.UUID, f model.NoteFilter) ([]model.Note, error)
	// Get loads a single note owned by the user.
	Get(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error)
	// Create inserts a new note.
	Create(ctx context.Context, n *model.Note) error
	// Update applies the patch atomically, snapshotting the old content into
	// note_versions first when the content changes.
	Update(ctx context.Context, userID, noteID uuid.UUID, p model.NotePatch) (*model.Note, error)
	// SetTags overwrites tags without versioning.
	SetTags(ctx context.Context, userID, noteID uuid.UUID, tags []string) error
	// Delete removes the note permanently.
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}
