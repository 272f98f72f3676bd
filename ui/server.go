package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"qsolve/internal/config"
	"qsolve/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server wires the HTTP API to the storage and adapter ports.
type Server struct {
	router     *gin.Engine
	config     *config.Config
	store      ports.Storage
	recognizer ports.Recognizer
	generator  ports.SolutionGenerator
	templates  *template.Template
	indexHTML  []byte
}

// NewServer creates the web server with its dependencies injected.
func NewServer(cfg *config.Config, store ports.Storage, recognizer ports.Recognizer, generator ports.SolutionGenerator) (*Server, error) {
	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	indexHTML, err := embeddedFiles.ReadFile("static/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load index page: %w", err)
	}

	s := &Server{
		router:     gin.New(),
		config:     cfg,
		store:      store,
		recognizer: recognizer,
		generator:  generator,
		templates:  templates,
		indexHTML:  indexHTML,
	}

	s.router.Use(requestLogger(), gin.Recovery())
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(embeddedFiles, "static")
	s.router.StaticFS("/static", http.FS(staticFS))

	s.router.GET("/", s.handleIndex)
	s.router.GET("/sessions/:id", s.handleSessionPage)

	api := s.router.Group("/api")
	api.POST("/ocr", s.handleOCR)
	api.POST("/solutions", s.handleSolutions)
	api.GET("/sessions/:id", s.handleGetSession)
	api.GET("/health", s.handleHealth)
}

// Handler exposes the router so the caller owns the http.Server lifecycle.
func (s *Server) Handler() http.Handler {
	return s.router
}
