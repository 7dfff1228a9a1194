package postgres

import (
	"context"
	"errors"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

const folderColumns = `id, user_id, parent_id, name, color, sort_order, created_at, updated_at`

// FolderRepo implements FolderRepository using PostgreSQL.
type FolderRepo struct{ db *DB }

// NewFolderRepo constructs a folder repository.
func NewFolderRepo(db *DB) *FolderRepo { return &FolderRepo{db: db} }

func scanFolder(row pgx.Row) (*model.Folder, error) {
	var f model.Folder
	if err := row.Scan(&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.Color, &f.Order, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns the user's folders flat, in sibling display order.
func (r *FolderRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Folder, error) {
	const q = `
SELECT ` + folderColumns + `
FROM folders
WHERE user_id=$1
ORDER BY sort_order ASC, name ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

// Get returns a single folder by id.
func (r *FolderRepo) Get(ctx context.Context, userID, folderID uuid.UUID) (*model.Folder, error) {
	const q = `SELECT ` + folderColumns + ` FROM folders WHERE id=$1 AND user_id=$2`
	f, err := scanFolder(r.db.Pool.QueryRow(ctx, q, folderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Create inserts a folder row and fills server timestamps.
func (r *FolderRepo) Create(ctx context.Context, f *model.Folder) error {
	const q = `
INSERT INTO folders (id, user_id, parent_id, name, color, sort_order)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, f.ID, f.UserID, f.ParentID, f.Name, f.Color, f.Order).
		Scan(&f.CreatedAt, &f.UpdatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrInvalidParent
	}
	return err
}

// Update rewrites name, parent, color and order.
func (r *FolderRepo) Update(ctx context.Context, f *model.Folder) error {
	const q = `
UPDATE folders
SET parent_id=$3, name=$4, color=$5, sort_order=$6, updated_at=now()
WHERE id=$1 AND user_id=$2
RETURNING updated_at`
	err := r.db.Pool.QueryRow(ctx, q, f.ID, f.UserID, f.ParentID, f.Name, f.Color, f.Order).Scan(&f.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errs.ErrNotFound
	case isForeignKeyViolation(err):
		return errs.ErrInvalidParent
	}
	return err
}

// Delete unfiles the folder's notes, promotes its child folders to root and removes the row.
func (r *FolderRepo) Delete(ctx context.Context, userID, folderID uuid.UUID) error {
	const detachNotes = `UPDATE notes SET folder_id=NULL WHERE folder_id=$1 AND user_id=$2`
	const detachChildren = `UPDATE folders SET parent_id=NULL, updated_at=now() WHERE parent_id=$1 AND user_id=$2`
	const del = `DELETE FROM folders WHERE id=$1 AND user_id=$2`

	return r.db.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, detachNotes, folderID, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, detachChildren, folderID, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, del, folderID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}
