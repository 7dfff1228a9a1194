package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/and161185/notekeeper/internal/model"
)

func (s *Server) folderTree(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	tree, err := s.folders.Tree(c.Request.Context(), user)
	if err != nil {
		s.fail(c, err, "Folder", "fetch folders")
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (s *Server) createFolder(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	f, err := s.folders.Create(c.Request.Context(), user, model.NewFolder{
		Name:     req.Name,
		ParentID: req.ParentID,
		Color:    req.Color,
	})
	if err != nil {
		s.fail(c, err, "Folder", "create folder")
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (s *Server) updateFolder(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	f, err := s.folders.Update(c.Request.Context(), user, id, req.patch())
	if err != nil {
		s.fail(c, err, "Folder", "update folder")
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) deleteFolder(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.folders.Delete(c.Request.Context(), user, id); err != nil {
		s.fail(c, err, "Folder", "delete folder")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
