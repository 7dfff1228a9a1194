// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User is the owner of folders, notes and usage records. Rows are managed by the auth collaborator.
type User struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// Folder is a single stored folder. ParentID is a lookup reference, not ownership.
type Folder struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"-"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parentId"` // nil = root
	Color     *string    `json:"color"`
	Order     int        `json:"order"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FolderNode is a folder projected into the forest with its children.
type FolderNode struct {
	Folder
	Children []*FolderNode `json:"children"`
}

// Note is a single stored note.
type Note struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"-"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`  // rich-text markup, opaque here
	FolderID   *uuid.UUID `json:"folderId"` // nil = unfiled
	Tags       []string   `json:"tags"`
	IsFavorite bool       `json:"isFavorite"`
	IsPinned   bool       `json:"isPinned"`
	IsArchived bool       `json:"isArchived"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NoteVersion is an immutable snapshot of a note's content taken before an overwrite.
type NoteVersion struct {
	ID        uuid.UUID
	NoteID    uuid.UUID
	Content   string
	CreatedAt time.Time
}

// AIUsage is a metering record written once per assist call.
type AIUsage struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Feature    string
	TokensUsed int // estimated, not a tokenizer count
	CreatedAt  time.Time
}

// NoteFilter narrows a note listing. All set fields are AND-combined.
type NoteFilter struct {
	FolderID      *uuid.UUID
	FavoritesOnly bool
	Archived      bool // false lists active notes, true lists the archive
	Search        string
}

// NewNote is a create intent.
type NewNote struct {
	Title    string
	Content  string
	FolderID *uuid.UUID
	Tags     []string
}

// NewFolder is a create intent.
type NewFolder struct {
	Name     string
	ParentID *uuid.UUID
	Color    *string
}

// OptionalID is a nullable reference in a patch: Set reports presence, ID nil means explicit null.
type OptionalID struct {
	Set bool
	ID  *uuid.UUID
}

// OptionalString is a nullable string in a patch.
type OptionalString struct {
	Set   bool
	Value *string
}

// NotePatch is a partial note update. Nil pointers and unset optionals are left untouched.
type NotePatch struct {
	Title      *string
	Content    *string
	FolderID   OptionalID
	Tags       *[]string
	IsFavorite *bool
	IsPinned   *bool
	IsArchived *bool
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.FolderID.Set {
		n.FolderID = p.FolderID.ID
	}
	if p.Tags != nil {
		n.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.IsFavorite != nil {
		n.IsFavorite = *p.IsFavorite
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
}

// ContentChanged reports whether applying the patch overwrites n's content with a different value.
func (p NotePatch) ContentChanged(n *Note) bool {
	return p.Content != nil && *p.Content != n.Content
}

// FolderPatch is a partial folder update.
type FolderPatch struct {
	Name     *string
	ParentID OptionalID
	Color    OptionalString
	Order    *int
}

// Apply merges the patch into f.
func (p FolderPatch) Apply(f *Folder) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.ParentID.Set {
		f.ParentID = p.ParentID.ID
	}
	if p.Color.Set {
		f.Color = p.Color.Value
	}
	if p.Order != nil {
		f.Order = *p.Order
	}
}
