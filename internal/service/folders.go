// Package service contains application services for folders, notes and AI assistance.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/and161185/notekeeper/internal/repository"
)

// FolderService defines folder hierarchy operations.
type FolderService interface {
	// Tree returns the user's folder forest.
	Tree(ctx context.Context, userID uuid.UUID) ([]*model.FolderNode, error)
	// Create adds a folder, optionally under an owned parent.
	Create(ctx context.Context, userID uuid.UUID, nf model.NewFolder) (*model.Folder, error)
	// Update renames, moves, recolors or reorders a folder.
	Update(ctx context.Context, userID, folderID uuid.UUID, p model.FolderPatch) (*model.Folder, error)
	// Delete removes a folder; its notes become unfiled.
	Delete(ctx context.Context, userID, folderID uuid.UUID) error
}

type FolderServiceImpl struct {
	folders repository.FolderRepository
}

// NewFolderService constructs FolderService.
func NewFolderService(folders repository.FolderRepository) *FolderServiceImpl {
	return &FolderServiceImpl{folders: folders}
}

// Tree lists the user's folders and links them into a forest.
func (s *FolderServiceImpl) Tree(ctx context.Context, userID uuid.UUID) ([]*model.FolderNode, error) {
	if userID == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	flat, err := s.folders.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return BuildFolderTree(flat), nil
}

// Create validates the name and parent and stores a new folder.
func (s *FolderServiceImpl) Create(ctx context.Context, userID uuid.UUID, nf model.NewFolder) (*model.Folder, error) {
	if userID == uuid.Nil {
		return nil, errors.New("validation: empty userID")
	}
	if nf.Name == "" {
		return nil, errs.Invalid("name", "must not be empty")
	}
	if nf.ParentID != nil {
		if _, err := s.folders.Get(ctx, userID, *nf.ParentID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.Invalid("parentId", "unknown folder")
			}
			return nil, err
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	f := &model.Folder{
		ID:       id,
		UserID:   userID,
		Name:     nf.Name,
		ParentID: nf.ParentID,
		Color:    nf.Color,
	}
	if err := s.folders.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Update applies a patch. Moving a folder under itself or one of its
// descendants is rejected.
func (s *FolderServiceImpl) Update(ctx context.Context, userID, folderID uuid.UUID, p model.FolderPatch) (*model.Folder, error) {
	if userID == uuid.Nil || folderID == uuid.Nil {
		return nil, errors.New("validation: empty userID/id")
	}
	if p.Name != nil && *p.Name == "" {
		return nil, errs.Invalid("name", "must not be empty")
	}

	f, err := s.folders.Get(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	if p.ParentID.Set && p.ParentID.ID != nil {
		if err := s.checkMove(ctx, userID, folderID, *p.ParentID.ID); err != nil {
			return nil, err
		}
	}

	p.Apply(f)
	if err := s.folders.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// checkMove verifies that parentID is an owned folder outside folderID's subtree.
func (s *FolderServiceImpl) checkMove(ctx context.Context, userID, folderID, parentID uuid.UUID) error {
	if parentID == folderID {
		return errs.Invalid("parentId", "folder cannot be its own parent")
	}
	flat, err := s.folders.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}
	parentOf := make(map[uuid.UUID]*uuid.UUID, len(flat))
	for _, f := range flat {
		parentOf[f.ID] = f.ParentID
	}
	if _, ok := parentOf[parentID]; !ok {
		return errs.Invalid("parentId", "unknown folder")
	}

	// Walk up from the new parent; meeting folderID means a cycle.
	seen := make(map[uuid.UUID]struct{}, len(flat))
	for cur := &parentID; cur != nil; cur = parentOf[*cur] {
		if *cur == folderID {
			return errs.Invalid("parentId", "folder cannot be moved into its own subtree")
		}
		if _, dup := seen[*cur]; dup {
			break
		}
		seen[*cur] = struct{}{}
	}
	return nil
}

// Delete removes a folder owned by the user.
func (s *FolderServiceImpl) Delete(ctx context.Context, userID, folderID uuid.UUID) error {
	if userID == uuid.Nil || folderID == uuid.Nil {
		return errors.New("validation: empty userID/id")
	}
	return s.folders.Delete(ctx, userID, folderID)
}
