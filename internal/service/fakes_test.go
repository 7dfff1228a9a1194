package service

import (
	"context"
	"sort"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/and161185/notekeeper/internal/repository"
)

type fakeFolderRepo struct {
	rows    map[uuid.UUID]model.Folder
	listErr error
	updated []model.Folder
	deleted []uuid.UUID
}

var _ repository.FolderRepository = (*fakeFolderRepo)(nil)

func newFakeFolderRepo(fs ...model.Folder) *fakeFolderRepo {
	r := &fakeFolderRepo{rows: map[uuid.UUID]model.Folder{}}
	for _, f := range fs {
		r.rows[f.ID] = f
	}
	return r
}

func (r *fakeFolderRepo) List(_ context.Context, userID uuid.UUID) ([]model.Folder, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []model.Folder{}
	for _, f := range r.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *fakeFolderRepo) Get(_ context.Context, userID, id uuid.UUID) (*model.Folder, error) {
	f, ok := r.rows[id]
	if !ok || f.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFolderRepo) Create(_ context.Context, f *model.Folder) error {
	r.rows[f.ID] = *f
	return nil
}

func (r *fakeFolderRepo) Update(_ context.Context, f *model.Folder) error {
	if cur, ok := r.rows[f.ID]; !ok || cur.UserID != f.UserID {
		return errs.ErrNotFound
	}
	r.rows[f.ID] = *f
	r.updated = append(r.updated, *f)
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if f, ok := r.rows[id]; !ok || f.UserID != userID {
		return errs.ErrNotFound
	}
	delete(r.rows, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeNoteRepo struct {
	rows     map[uuid.UUID]model.Note
	versions map[uuid.UUID][]string

	listInFilter model.NoteFilter
	setTagsCalls int
}

var _ repository.NoteRepository = (*fakeNoteRepo)(nil)

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{rows: map[uuid.UUID]model.Note{}, versions: map[uuid.UUID][]string{}}
}

func (r *fakeNoteRepo) List(_ context.Context, userID uuid.UUID, f model.NoteFilter) ([]model.Note, error) {
	r.listInFilter = f
	out := []model.Note{}
	for _, n := range r.rows {
		if n.UserID != userID || n.IsArchived != f.Archived {
			continue
		}
		if f.FolderID != nil && (n.FolderID == nil || *n.FolderID != *f.FolderID) {
			continue
		}
		if f.FavoritesOnly && !n.IsFavorite {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(n.Title), s) && !strings.Contains(strings.ToLower(n.Content), s) {
				continue
			}
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNoteRepo) Get(_ context.Context, userID, id uuid.UUID) (*model.Note, error) {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &n, nil
}

func (r *fakeNoteRepo) Create(_ context.Context, n *model.Note) error {
	r.rows[n.ID] = *n
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, userID, id uuid.UUID, p model.NotePatch) (*model.Note, error) {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return nil, errs.ErrNotFound
	}
	if p.ContentChanged(&n) {
		r.versions[id] = append(r.versions[id], n.Content)
	}
	p.Apply(&n)
	r.rows[id] = n
	return &n, nil
}

func (r *fakeNoteRepo) SetTags(_ context.Context, userID, id uuid.UUID, tags []string) error {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	r.setTagsCalls++
	n.Tags = tags
	r.rows[id] = n
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakeUsageRepo struct {
	records []model.AIUsage
	err     error
}

var _ repository.UsageRepository = (*fakeUsageRepo)(nil)

func (r *fakeUsageRepo) Record(_ context.Context, u *model.AIUsage) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *u)
	return nil
}

func ptr[T any](v T) *T { return &v }

func newID() uuid.UUID { return uuid.Must(uuid.NewV4()) }
