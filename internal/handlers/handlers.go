package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"musyoka.dev/internal/config"
	"musyoka.dev/internal/contact"
	"musyoka.dev/internal/db"
	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/middleware"
	"musyoka.dev/internal/models"
	"musyoka.dev/internal/services"
	"musyoka.dev/internal/templates"
)

// Dependencies are the pieces the router is built from. DB, Contact and
// Tracker are optional; the routes that need them answer 503 without them.
type Dependencies struct {
	Config    *config.Config
	Site      *models.Site
	Templates *templates.Set
	DB        *db.DB
	Contact   *contact.Service
	Tracker   *middleware.VisitorTracker
	Now       func() time.Time
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	if deps.Now == nil {
		deps.Now = time.Now
	}

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	if deps.Tracker != nil {
		r.Use(deps.Tracker.Middleware)
	}

	// Initialize services
	projectService := services.NewProjectService(&models.ProjectList{Projects: deps.Site.Projects})

	// Initialize handlers
	pageHandler := NewPageHandler(deps.Site, deps.Templates, projectService, deps.Config.ScrollThreshold, deps.Now)
	projectHandler := NewProjectHandler(projectService)
	contactHandler := NewContactHandler(deps.Contact, pageHandler)
	statsHandler := NewStatsHandler(deps.DB, deps.Now)

	// Pages
	r.Get("/", pageHandler.Index)
	r.Get("/projects/{id}", pageHandler.ProjectPage)
	r.Post("/contact", contactHandler.Submit)

	// HTMX fragments
	r.Route("/fragments", func(r chi.Router) {
		r.Get("/navbar", pageHandler.Navbar)
		r.Get("/projects", pageHandler.Gallery)
		r.Get("/projects/{id}", pageHandler.Modal)
		r.Get("/modal/close", pageHandler.ModalClose)
		r.Get("/toolkit", pageHandler.Toolkit)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.Config.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/categories", projectHandler.ListCategories)

		r.Get("/stats", statsHandler.GetStats)

		// Health check
		r.Get("/health", health)
	})
	r.Get("/healthz", health)

	// Static files
	fileServer := http.FileServer(http.Dir(deps.Config.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	r.NotFound(pageHandler.NotFound)

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Error encoding JSON")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
