package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/and161185/notekeeper/internal/repository"
)

// NoteService defines note queries and mutations, all scoped to one user.
type NoteService interface {
	// List returns matching notes, most recently updated first. Archived notes
	// are only returned when the filter asks for the archive.
	List(ctx context.Context, userID uuid.UUID, f model.NoteFilter) ([]model.Note, error)
	// Get returns a single note.
	Get(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error)
	// Create stores a new note.
	Create(ctx context.Context, userID uuid.UUID, nn model.NewNote) (*model.Note, error)
	// Update applies a patch; changed content is versioned first.
	Update(ctx context.Context, userID, noteID uuid.UUID, p model.NotePatch) (*model.Note, error)
	// SetTags overwrites tags without creating a version.
	SetTags(ctx context.Context, userID, noteID uuid.UUID, tags []string) error
	// Delete removes a note permanently.
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type NoteServiceImpl struct {
	notes   repository.NoteRepository
	folders repository.FolderRepository
}

// NewNoteService constructs NoteService.
func NewNoteService(notes repository.NoteRepository, folders repository.FolderRepository) *NoteServiceImpl {
	return &NoteServiceImpl{notes: notes, folders: folders}
}

// List delegates the filtered query to the repository.
func (s *NoteServiceImpl) List(ctx context.Context, userID uuid.UUID, f model.NoteFilter) ([]model.Note, error) {
	if userID == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	return s.notes.List(ctx, userID, f)
}

// Get fetches a note owned by the user.
func (s *NoteServiceImpl) Get(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error) {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return nil, errors.New("validation: empty userID/id")
	}
	return s.notes.Get(ctx, userID, noteID)
}

// Create validates input, applies defaults and stores the note.
// Validation rules:
// - title not empty
// - folder, if given, owned by the user
func (s *NoteServiceImpl) Create(ctx context.Context, userID uuid.UUID, nn model.NewNote) (*model.Note, error) {
	if userID == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	if nn.Title == "" {
		return nil, errs.Invalid("title", "must not be empty")
	}
	if err := s.checkFolder(ctx, userID, nn.FolderID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	n := &model.Note{
		ID:       id,
		UserID:   userID,
		Title:    nn.Title,
		Content:  nn.Content,
		FolderID: nn.FolderID,
		Tags:     append([]string{}, nn.Tags...),
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update validates the patch and delegates the atomic snapshot-then-write to the repository.
func (s *NoteServiceImpl) Update(ctx context.Context, userID, noteID uuid.UUID, p model.NotePatch) (*model.Note, error) {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return nil, errors.New("validation: empty userID/id")
	}
	if p.Title != nil && *p.Title == "" {
		return nil, errs.Invalid("title", "must not be empty")
	}
	if p.FolderID.Set {
		if err := s.checkFolder(ctx, userID, p.FolderID.ID); err != nil {
			return nil, err
		}
	}
	return s.notes.Update(ctx, userID, noteID, p)
}

// SetTags overwrites the tags of an owned note.
func (s *NoteServiceImpl) SetTags(ctx context.Context, userID, noteID uuid.UUID, tags []string) error {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return errors.New("validation: empty userID/id")
	}
	if tags == nil {
		tags = []string{}
	}
	return s.notes.SetTags(ctx, userID, noteID, tags)
}

// Delete removes an owned note.
func (s *NoteServiceImpl) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return errors.New("validation: empty userID/id")
	}
	return s.notes.Delete(ctx, userID, noteID)
}

func (s *NoteServiceImpl) checkFolder(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) error {
	if folderID == nil {
		return nil
	}
	if _, err := s.folders.Get(ctx, userID, *folderID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.Invalid("folderId", "unknown folder")
		}
		return err
	}
	return nil
}
