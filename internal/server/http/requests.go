package httpserver

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/notekeeper/internal/model"
)

// nullableID tells an absent key from an explicit null.
type nullableID struct{ model.OptionalID }

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.ID = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.ID = &id
	return nil
}

type nullableString struct{ model.OptionalString }

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type createNoteRequest struct {
	Title    string     `json:"title" binding:"required"`
	Content  string     `json:"content"`
	FolderID *uuid.UUID `json:"folderId"`
	Tags     []string   `json:"tags"`
}

type updateNoteRequest struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	FolderID   nullableID `json:"folderId"`
	Tags       *[]string  `json:"tags"`
	IsFavorite *bool      `json:"isFavorite"`
	IsPinned   *bool      `json:"isPinned"`
	IsArchived *bool      `json:"isArchived"`
}

func (r updateNoteRequest) patch() model.NotePatch {
	return model.NotePatch{
		Title:      r.Title,
		Content:    r.Content,
		FolderID:   r.FolderID.OptionalID,
		Tags:       r.Tags,
		IsFavorite: r.IsFavorite,
		IsPinned:   r.IsPinned,
		IsArchived: r.IsArchived,
	}
}

type createFolderRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parentId"`
	Color    *string    `json:"color"`
}

type updateFolderRequest struct {
	Name     *string        `json:"name"`
	ParentID nullableID     `json:"parentId"`
	Color    nullableString `json:"color"`
	Order    *int           `json:"order"`
}

func (r updateFolderRequest) patch() model.FolderPatch {
	return model.FolderPatch{
		Name:     r.Name,
		ParentID: r.ParentID.OptionalID,
		Color:    r.Color.OptionalString,
		Order:    r.Order,
	}
}

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

type improveRequest struct {
	Text   string `json:"text" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type summarizeRequest struct {
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"omitempty,oneof=summary keypoints"`
}

type tagsRequest struct {
	Text   string     `json:"text" binding:"required"`
	NoteID *uuid.UUID `json:"noteId"`
}

// noteSummary is a list entry: the note without its archive flag.
type noteSummary struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	IsFavorite bool       `json:"isFavorite"`
	IsPinned   bool       `json:"isPinned"`
	FolderID   *uuid.UUID `json:"folderId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toSummaries(ns []model.Note) []noteSummary {
	out := make([]noteSummary, 0, len(ns))
	for _, n := range ns {
		out = append(out, noteSummary{
			ID:         n.ID,
			Title:      n.Title,
			Content:    n.Content,
			Tags:       n.Tags,
			IsFavorite: n.IsFavorite,
			IsPinned:   n.IsPinned,
			FolderID:   n.FolderID,
			CreatedAt:  n.CreatedAt,
			UpdatedAt:  n.UpdatedAt,
		})
	}
	return out
}
