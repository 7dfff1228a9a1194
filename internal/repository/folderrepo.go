// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/notekeeper/internal/model"
	"github.com/gofrs/uuid/v5"
)

// FolderRepository provides user-scoped access to folders.
type FolderRepository interface {
	// List returns all folders of a user ordered by order, name, id.
	List(ctx context.Context, userID uuid.UUID) ([]model.Folder, error)
	// Get loads a single folder owned by the user.
	Get(ctx context.Context, userID, folderID uuid.UUID) (*model.Folder, error)
	// Create inserts a new folder.
	Create(ctx context.Context, f *model.Folder) error
	// Update rewrites the mutable fields of a folder owned by f.UserID.
	Update(ctx context.Context, f *model.Folder) error
	// Delete detaches notes and child folders, then removes the folder.
	Delete(ctx context.Context, userID, folderID uuid.UUID) error
}
