package ui

import (
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bootstrapstats/app"
	"bootstrapstats/internal"
	"bootstrapstats/internal/errors"
)

// Server is the gin front-end: JSON API plus HTML exercise pages
type Server struct {
	router    *gin.Engine
	pages     pages
	templates *template.Template
	files     fs.FS
	logger    *internal.Logger
}

// NewServer creates a new web server instance. files must contain
// templates/*.html and static/.
func NewServer(service *app.AnalysisService, files fs.FS, logger *internal.Logger) (*Server, error) {
	templates, err := parseTemplates(files)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:    gin.Default(),
		pages:     pages{service: service},
		templates: templates,
		files:     files,
		logger:    logger.WithPrefix("[Server]"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(s.files, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/exercises/:id", s.handleExercise)
	s.router.POST("/exercises/:id", s.handleExerciseSubmit)

	api := s.router.Group("/api")
	{
		api.GET("/exercises", s.handleListExercises)
		api.POST("/analyses/:id", s.handleAnalyze)
	}
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on the given port
func (s *Server) Start(port string) error {
	s.logger.Info("Starting bootstrap server on :%s", port)
	return s.router.Run(":" + port)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", s.pages.index())
}

func (s *Server) handleExercise(c *gin.Context) {
	view, appErr := s.pages.exercise(c.Param("id"))
	if appErr != nil {
		s.renderTemplate(c, errors.HTTPStatus(appErr.Code), "exercise.html", exerciseView{Title: "Unknown exercise", Error: appErr})
		return
	}
	s.renderTemplate(c, http.StatusOK, "exercise.html", view)
}

func (s *Server) handleExerciseSubmit(c *gin.Context) {
	view, status := s.pages.submit(c.Request.Context(), c.Param("id"), formInput{
		Data1:     c.PostForm("data1"),
		Data2:     c.PostForm("data2"),
		Seed:      c.PostForm("seed"),
		BlockSize: c.PostForm("block_size"),
	})
	s.renderTemplate(c, status, "exercise.html", view)
}

func (s *Server) handleListExercises(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exercises": s.pages.service.Exercises()})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: errors.InvalidInput("failed to read request body")})
		return
	}
	status, body := s.pages.analyze(c.Request.Context(), c.Param("id"), raw)
	c.JSON(status, body)
}
