package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

const noteColumns = `id, user_id, folder_id, title, content, tags, is_favorite, is_pinned, is_archived, created_at, updated_at`

// NoteRepo implements NoteRepository using PostgreSQL.
type NoteRepo struct{ db *DB }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

func scanNote(row pgx.Row) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.FolderID, &n.Title, &n.Content, &n.Tags,
		&n.IsFavorite, &n.IsPinned, &n.IsArchived, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listQuery builds the filtered listing. user_id and is_archived are always bound.
func listQuery(userID uuid.UUID, f model.NoteFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + noteColumns + ` FROM notes WHERE user_id=$1 AND is_archived=$2`)
	args := []any{userID, f.Archived}
	if f.FolderID != nil {
		args = append(args, *f.FolderID)
		fmt.Fprintf(&sb, ` AND folder_id=$%d`, len(args))
	}
	if f.FavoritesOnly {
		sb.WriteString(` AND is_favorite=true`)
	}
	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		fmt.Fprintf(&sb, ` AND (title ILIKE $%d OR content ILIKE $%d)`, len(args), len(args))
	}
	sb.WriteString(` ORDER BY updated_at DESC, id DESC`)
	return sb.String(), args
}

// List returns the user's notes matching the filter, most recently updated first.
func (r *NoteRepo) List(ctx context.Context, userID uuid.UUID, f model.NoteFilter) ([]model.Note, error) {
	q, args := listQuery(userID, f)
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// Get returns a single note by id.
func (r *NoteRepo) Get(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE id=$1 AND user_id=$2`
	n, err := scanNote(r.db.Pool.QueryRow(ctx, q, noteID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// Create inserts a note row and fills server timestamps.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const q = `
INSERT INTO notes (id, user_id, folder_id, title, content, tags)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, n.ID, n.UserID, n.FolderID, n.Title, n.Content, n.Tags).
		Scan(&n.CreatedAt, &n.UpdatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrInvalidParent
	}
	return err
}

// Update locks the row, snapshots the old content when it changes, then writes the merged note.
func (r *NoteRepo) Update(ctx context.Context, userID, noteID uuid.UUID, p model.NotePatch) (*model.Note, error) {
	const sel = `SELECT ` + noteColumns + ` FROM notes WHERE id=$1 AND user_id=$2 FOR UPDATE`
	const ins = `INSERT INTO note_versions (id, note_id, content) VALUES ($1, $2, $3)`
	const upd = `
UPDATE notes
SET folder_id=$3, title=$4, content=$5, tags=$6, is_favorite=$7, is_pinned=$8, is_archived=$9, updated_at=now()
WHERE id=$1 AND user_id=$2
RETURNING updated_at`

	var out *model.Note
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		cur, err := scanNote(tx.QueryRow(ctx, sel, noteID, userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}
		if p.ContentChanged(cur) {
			vid, err := uuid.NewV4()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, ins, vid, cur.ID, cur.Content); err != nil {
				return fmt.Errorf("snapshot version: %w", err)
			}
		}
		p.Apply(cur)
		err = tx.QueryRow(ctx, upd, cur.ID, userID, cur.FolderID, cur.Title, cur.Content, cur.Tags,
			cur.IsFavorite, cur.IsPinned, cur.IsArchived).Scan(&cur.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return errs.ErrInvalidParent
			}
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetTags overwrites a note's tags. Tags are not versioned.
func (r *NoteRepo) SetTags(ctx context.Context, userID, noteID uuid.UUID, tags []string) error {
	const q = `UPDATE notes SET tags=$3, updated_at=now() WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, noteID, userID, tags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a note row.
func (r *NoteRepo) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	const q = `DELETE FROM notes WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, noteID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
