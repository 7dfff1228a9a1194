package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/and161185/notekeeper/internal/errs"
	"github.com/and161185/notekeeper/internal/model"
)

// userID reads the authenticated user placed by Auth.
func userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := UserIDFromCtx(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		invalid(c, []errs.FieldError{{Field: "id", Message: "bad id"}})
		return uuid.Nil, false
	}
	return id, true
}

func queryBool(c *gin.Context, key string) (bool, bool) {
	v := c.Query(key)
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		invalid(c, []errs.FieldError{{Field: key, Message: "must be a boolean"}})
		return false, false
	}
	return b, true
}

func (s *Server) listNotes(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var f model.NoteFilter
	if v := c.Query("folderId"); v != "" {
		id, err := uuid.FromString(v)
		if err != nil {
			invalid(c, []errs.FieldError{{Field: "folderId", Message: "bad id"}})
			return
		}
		f.FolderID = &id
	}
	if f.FavoritesOnly, ok = queryBool(c, "isFavorite"); !ok {
		return
	}
	if f.Archived, ok = queryBool(c, "isArchived"); !ok {
		return
	}
	f.Search = c.Query("search")

	notes, err := s.notes.List(c.Request.Context(), user, f)
	if err != nil {
		s.fail(c, err, "Note", "fetch notes")
		return
	}
	c.JSON(http.StatusOK, toSummaries(notes))
}

func (s *Server) createNote(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := s.notes.Create(c.Request.Context(), user, model.NewNote{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		Tags:     req.Tags,
	})
	if err != nil {
		s.fail(c, err, "Note", "create note")
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) getNote(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := s.notes.Get(c.Request.Context(), user, id)
	if err != nil {
		s.fail(c, err, "Note", "fetch note")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) updateNote(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := s.notes.Update(c.Request.Context(), user, id, req.patch())
	if err != nil {
		s.fail(c, err, "Note", "update note")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) deleteNote(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.notes.Delete(c.Request.Context(), user, id); err != nil {
		s.fail(c, err, "Note", "delete note")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
