package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
	"github.com/and161185/notekeeper/internal/repository"
	"github.com/and161185/notekeeper/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

// memStore backs the folder and note repositories with shared maps so that
// folder deletion can detach notes the way the database does.
type memStore struct {
	mu       sync.Mutex
	folders  map[uuid.UUID]model.Folder
	notes    map[uuid.UUID]model.Note
	versions map[uuid.UUID][]string
	users    map[uuid.UUID]bool
	usage    []model.AIUsage
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		folders:  map[uuid.UUID]model.Folder{},
		notes:    map[uuid.UUID]model.Note{},
		versions: map[uuid.UUID][]string{},
		users:    map[uuid.UUID]bool{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memFolders struct{ *memStore }
type memNotes struct{ *memStore }
type memUsers struct{ *memStore }
type memUsage struct{ *memStore }

var (
	_ repository.FolderRepository = memFolders{}
	_ repository.NoteRepository   = memNotes{}
	_ repository.UserRepository   = memUsers{}
	_ repository.UsageRepository  = memUsage{}
)

func (r memFolders) List(_ context.Context, userID uuid.UUID) ([]model.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Folder{}
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r memFolders) Get(_ context.Context, userID, id uuid.UUID) (*model.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &f, nil
}

func (r memFolders) Create(_ context.Context, f *model.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.CreatedAt = r.tick()
	f.UpdatedAt = f.CreatedAt
	r.folders[f.ID] = *f
	return nil
}

func (r memFolders) Update(_ context.Context, f *model.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.folders[f.ID]; !ok || cur.UserID != f.UserID {
		return errs.ErrNotFound
	}
	f.UpdatedAt = r.tick()
	r.folders[f.ID] = *f
	return nil
}

func (r memFolders) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.folders[id]; !ok || f.UserID != userID {
		return errs.ErrNotFound
	}
	for k, n := range r.notes {
		if n.FolderID != nil && *n.FolderID == id {
			n.FolderID = nil
			r.notes[k] = n
		}
	}
	for k, f := range r.folders {
		if f.ParentID != nil && *f.ParentID == id {
			f.ParentID = nil
			r.folders[k] = f
		}
	}
	delete(r.folders, id)
	return nil
}

func (r memNotes) List(_ context.Context, userID uuid.UUID, f model.NoteFilter) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Note{}
	for _, n := range r.notes {
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
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(n.Title), q) && !strings.Contains(strings.ToLower(n.Content), q) {
				continue
			}
		}
		out = append(out, n)
	}
	return out, nil
}

func (r memNotes) Get(_ context.Context, userID, id uuid.UUID) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return &n, nil
}

func (r memNotes) Create(_ context.Context, n *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.CreatedAt = r.tick()
	n.UpdatedAt = n.CreatedAt
	r.notes[n.ID] = *n
	return nil
}

func (r memNotes) Update(_ context.Context, userID, id uuid.UUID, p model.NotePatch) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, errs.ErrNotFound
	}
	if p.ContentChanged(&n) {
		r.versions[id] = append(r.versions[id], n.Content)
	}
	p.Apply(&n)
	n.UpdatedAt = r.tick()
	r.notes[id] = n
	return &n, nil
}

func (r memNotes) SetTags(_ context.Context, userID, id uuid.UUID, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	n.Tags = tags
	r.notes[id] = n
	return nil
}

func (r memNotes) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.notes[id]; !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r memUsers) Ensure(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id] = true
	return nil
}

func (r memUsage) Record(_ context.Context, u *model.AIUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage = append(r.usage, *u)
	return nil
}

type stubAssistant struct {
	text string
	list []string
}

var _ service.Assistant = (*stubAssistant)(nil)

func (a *stubAssistant) Improve(context.Context, string, string) (string, error) { return a.text, nil }
func (a *stubAssistant) Summarize(context.Context, string) (string, error) { return a.text, nil }
func (a *stubAssistant) Continue(context.Context, string) (string, error) { return a.text, nil }
func (a *stubAssistant) KeyPoints(context.Context, string) ([]string, error) { return a.list, nil }
func (a *stubAssistant) SuggestTags(context.Context, string) ([]string, error) { return a.list, nil }
func (a *stubAssistant) ActionItems(context.Context, string) ([]string, error) { return a.list, nil }

var testKey = []byte("test-secret")

type testEnv struct {
	t      *testing.T
	store  *memStore
	ai     *stubAssistant
	router http.Handler
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	st := newMemStore()
	ai := &stubAssistant{text: "result", list: []string{"one", "two"}}
	notes := service.NewNoteService(memNotes{st}, memFolders{st})
	folders := service.NewFolderService(memFolders{st})
	assist := service.NewAssistService(ai, memUsage{st}, notes, nil)
	srv := New(notes, folders, assist, memUsers{st}, testKey, zaptest.NewLogger(t))
	return &testEnv{t: t, store: st, ai: ai, router: srv.Router(nil)}
}

func jwtFor(t *testing.T, sub string, key []byte, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

// do sends a request as user (uuid.Nil means no Authorization header) and
// decodes a JSON response into out when out is not nil.
func (e *testEnv) do(user uuid.UUID, method, path string, body any, out any) int {
	e.t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			e.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+jwtFor(e.t, user.String(), testKey, time.Minute))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			e.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}
