// Package httpserver exposes the notekeeper HTTP/JSON API.
package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/notekeeper/internal/repository"
	"github.com/and161185/notekeeper/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	notes   service.NoteService
	folders service.FolderService
	assist  service.AssistService
	users   repository.UserRepository
	signKey []byte
	log     *zap.Logger
}

// New constructs a Server with injected services.
func New(notes service.NoteService, folders service.FolderService, assist service.AssistService,
	users repository.UserRepository, signKey []byte, log *zap.Logger) *Server {
	return &Server{notes: notes, folders: folders, assist: assist, users: users, signKey: signKey, log: log}
}

// Router builds the gin engine. An empty origins list allows any origin.
func (s *Server) Router(origins []string) *gin.Engine {
	registerFieldNames()

	r := gin.New()
	r.Use(Recover(s.log), Logging(s.log), cors.New(corsConfig(origins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/")
	api.Use(Auth(s.signKey, s.users, s.log))

	api.GET("/notes", s.listNotes)
	api.POST("/notes", s.createNote)
	api.GET("/notes/:id", s.getNote)
	api.PATCH("/notes/:id", s.updateNote)
	api.DELETE("/notes/:id", s.deleteNote)

	api.GET("/folders", s.folderTree)
	api.POST("/folders", s.createFolder)
	api.PATCH("/folders/:id", s.updateFolder)
	api.DELETE("/folders/:id", s.deleteFolder)

	ai := api.Group("/ai")
	ai.POST("/improve", s.improve)
	ai.POST("/summarize", s.summarize)
	ai.POST("/tags", s.tags)
	ai.POST("/actions", s.actions)
	ai.POST("/continue", s.continueWriting)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
