package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/models"
	"musyoka.dev/internal/services"
	"musyoka.dev/internal/templates"
)

// PageHandler renders the page and its HTMX fragments
type PageHandler struct {
	site            *models.Site
	templates       *templates.Set
	projectService  *services.ProjectService
	scrollThreshold int
	now             func() time.Time
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(site *models.Site, ts *templates.Set, ps *services.ProjectService, scrollThreshold int, now func() time.Time) *PageHandler {
	return &PageHandler{
		site:            site,
		templates:       ts,
		projectService:  ps,
		scrollThreshold: scrollThreshold,
		now:             now,
	}
}

// pageData builds the template data for the view state in r's query
func (h *PageHandler) pageData(r *http.Request) templates.PageData {
	state := services.ParseViewState(r.URL.Query(), h.projectService, len(h.site.Toolkit))
	return h.pageDataFor(state)
}

func (h *PageHandler) pageDataFor(state services.ViewState) templates.PageData {
	return templates.PageData{
		Site:            h.site,
		State:           state,
		Projects:        h.projectService.Filter(state.Category),
		Categories:      h.projectService.Categories(),
		ScrollThreshold: h.scrollThreshold,
		Year:            h.now().Year(),
		Static:          "/static",
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data templates.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request")

	// Render is buffered, so headers are only committed on success.
	rw := &statusWriter{ResponseWriter: w, status: status}
	if err := h.templates.Render(rw, name, data); err != nil {
		logging.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// statusWriter delays WriteHeader until the first Write
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if !s.written {
		s.ResponseWriter.WriteHeader(s.status)
		s.written = true
	}
	return s.ResponseWriter.Write(b)
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", h.pageData(r))
}

// ProjectPage handles GET /projects/{id}, a standalone detail page
func (h *PageHandler) ProjectPage(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	if !data.State.Select(h.projectService, chi.URLParam(r, "id")) {
		h.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, "project.html", data)
}

// Navbar handles GET /fragments/navbar?scrollY=
func (h *PageHandler) Navbar(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)

	offset, err := strconv.Atoi(r.URL.Query().Get("scrollY"))
	if err != nil {
		offset = 0
	}
	data.Scrolled = services.NavbarScrolled(offset, h.scrollThreshold)

	h.render(w, http.StatusOK, "fragment_navbar.html", data)
}

// Gallery handles GET /fragments/projects?category=
func (h *PageHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "fragment_project_gallery.html", h.pageData(r))
}

// Modal handles GET /fragments/projects/{id}
func (h *PageHandler) Modal(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	if !data.State.Select(h.projectService, chi.URLParam(r, "id")) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	h.render(w, http.StatusOK, "fragment_project_modal.html", data)
}

// ModalClose handles GET /fragments/modal/close
func (h *PageHandler) ModalClose(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	data.State.Close()
	h.render(w, http.StatusOK, "fragment_project_modal.html", data)
}

// Toolkit handles GET /fragments/toolkit?skill=
func (h *PageHandler) Toolkit(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "fragment_toolkit.html", h.pageData(r))
}

// NotFound renders a 404 for unknown pages
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Page not found", http.StatusNotFound)
}
