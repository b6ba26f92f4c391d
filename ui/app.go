package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bootstrapstats/app"
	"bootstrapstats/internal"
	"bootstrapstats/internal/errors"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Files returns the embedded templates and static assets
func Files() embed.FS {
	return embeddedFiles
}

// App is the chi front-end. It serves the same pages and API as Server.
type App struct {
	router    *chi.Mux
	pages     pages
	templates *template.Template
	logger    *internal.Logger
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(config Config, service *app.AnalysisService, logger *internal.Logger) (*App, error) {
	templates, err := parseTemplates(embeddedFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	a := &App{
		router:    chi.NewRouter(),
		pages:     pages{service: service},
		templates: templates,
		logger:    logger.WithPrefix("[App]"),
		port:      config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	a.router.Handle("/static/*", http.FileServer(http.FS(embeddedFiles)))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/exercises/{id}", a.handleExercise)
	a.router.Post("/exercises/{id}", a.handleExerciseSubmit)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/exercises", a.handleListExercises)
		r.Post("/analyses/{id}", a.handleAnalyze)
	})
}

// Handler exposes the router for tests and custom listeners
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	srv := &http.Server{
		Addr:              ":" + a.port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.logger.Info("Starting bootstrap UI on %s", srv.Addr)
	return srv.ListenAndServe()
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "index.html", a.pages.index())
}

func (a *App) handleExercise(w http.ResponseWriter, r *http.Request) {
	view, appErr := a.pages.exercise(chi.URLParam(r, "id"))
	if appErr != nil {
		a.renderTemplate(w, errors.HTTPStatus(appErr.Code), "exercise.html", exerciseView{Title: "Unknown exercise", Error: appErr})
		return
	}
	a.renderTemplate(w, http.StatusOK, "exercise.html", view)
}

func (a *App) handleExerciseSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	view, status := a.pages.submit(r.Context(), chi.URLParam(r, "id"), formInput{
		Data1:     r.PostFormValue("data1"),
		Data2:     r.PostFormValue("data2"),
		Seed:      r.PostFormValue("seed"),
		BlockSize: r.PostFormValue("block_size"),
	})
	a.renderTemplate(w, status, "exercise.html", view)
}

func (a *App) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"exercises": a.pages.service.Exercises()})
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errors.InvalidInput("failed to read request body")})
		return
	}
	status, body := a.pages.analyze(r.Context(), chi.URLParam(r, "id"), raw)
	writeJSON(w, status, body)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	buf, err := executeTemplate(a.templates, templateName, data)
	if err != nil {
		a.logger.Error("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("Error writing template response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		internal.DefaultLogger.Warn("Error writing JSON response: %v", err)
	}
}
