package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) improve(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	out, err := s.assist.Improve(c.Request.Context(), user, req.Text, req.Action)
	if err != nil {
		s.fail(c, err, "Note", "improve text")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": out})
}

// summarize returns a string for type=summary and a list for type=keypoints.
func (s *Server) summarize(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if req.Type == "keypoints" {
		points, err := s.assist.KeyPoints(ctx, user, req.Text)
		if err != nil {
			s.fail(c, err, "Note", "summarize text")
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": points})
		return
	}
	out, err := s.assist.Summarize(ctx, user, req.Text)
	if err != nil {
		s.fail(c, err, "Note", "summarize text")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": out})
}

func (s *Server) tags(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tags, err := s.assist.SuggestTags(c.Request.Context(), user, req.Text, req.NoteID)
	if err != nil {
		s.fail(c, err, "Note", "generate tags")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (s *Server) actions(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	items, err := s.assist.ActionItems(c.Request.Context(), user, req.Text)
	if err != nil {
		s.fail(c, err, "Note", "extract actions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": items})
}

func (s *Server) continueWriting(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	out, err := s.assist.Continue(c.Request.Context(), user, req.Text)
	if err != nil {
		s.fail(c, err, "Note", "continue writing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": out})
}
