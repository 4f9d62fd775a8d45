package handlers

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"musyoka.dev/internal/config"
	"musyoka.dev/internal/contact"
	"musyoka.dev/internal/content"
	"musyoka.dev/internal/db"
	"musyoka.dev/internal/middleware"
	"musyoka.dev/internal/models"
	"musyoka.dev/internal/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	db      *db.DB
	tracker *middleware.VisitorTracker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	site, err := content.Default()
	require.NoError(t, err)
	ts, err := templates.New()
	require.NoError(t, err)
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cfg := config.Default()
	cfg.StaticDir = t.TempDir()
	tracker := middleware.NewVisitorTracker(database, "salt")

	srv := httptest.NewServer(SetupRoutes(Dependencies{
		Config:    cfg,
		Site:      site,
		Templates: ts,
		DB:        database,
		Contact:   contact.NewService(database, nil),
		Tracker:   tracker,
		Now:       func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) },
	}))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, db: database, tracker: tracker}
}

func (s *testServer) get(t *testing.T, path string, headers ...string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.URL+path, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	status, body := s.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Musyoka Philip Mutuku")
	assert.Contains(t, body, "StockSync")
	assert.Contains(t, body, "&copy; 2026")
}

func TestIndexCategoryFilter(t *testing.T) {
	s := newTestServer(t)

	status, body := s.get(t, "/?category=tool")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="project-mp3ninja"`)
	assert.NotContains(t, body, `id="project-libread"`)
	assert.NotContains(t, body, `id="project-stocksync"`)
}

func TestIndexWithSelectedProject(t *testing.T) {
	s := newTestServer(t)

	_, body := s.get(t, "/?project=libread")
	assert.Contains(t, body, `aria-modal="true"`)
	assert.Contains(t, body, "Multi-Modal Text-to-Speech Platform")

	_, body = s.get(t, "/?project=unknown")
	assert.NotContains(t, body, `aria-modal="true"`)
}

func TestProjectPage(t *testing.T) {
	s := newTestServer(t)

	status, body := s.get(t, "/projects/syntaxmem")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>SyntaxMem | ")

	status, _ = s.get(t, "/projects/nope")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFragments(t *testing.T) {
	s := newTestServer(t)

	t.Run("navbar below threshold", func(t *testing.T) {
		status, body := s.get(t, "/fragments/navbar?scrollY=10")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "navbar-top")
		assert.NotContains(t, body, "<html")
	})
	t.Run("navbar above threshold", func(t *testing.T) {
		_, body := s.get(t, "/fragments/navbar?scrollY=51")
		assert.Contains(t, body, "navbar-scrolled")
	})
	t.Run("navbar bad offset", func(t *testing.T) {
		status, body := s.get(t, "/fragments/navbar?scrollY=lots")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "navbar-top")
	})
	t.Run("gallery", func(t *testing.T) {
		_, body := s.get(t, "/fragments/projects?category=platform")
		assert.Contains(t, body, `id="project-libread"`)
		assert.Contains(t, body, `id="project-syntaxmem"`)
		assert.NotContains(t, body, `id="project-mp3ninja"`)
	})
	t.Run("modal", func(t *testing.T) {
		status, body := s.get(t, "/fragments/projects/stocksync?category=web-app")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "View Source Code")
		assert.Contains(t, body, `href="/?category=web-app#projects"`)
	})
	t.Run("modal unknown", func(t *testing.T) {
		status, _ := s.get(t, "/fragments/projects/nope")
		assert.Equal(t, http.StatusNotFound, status)
	})
	t.Run("modal close", func(t *testing.T) {
		status, body := s.get(t, "/fragments/modal/close?project=stocksync")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `id="project-modal"`)
		assert.NotContains(t, body, "View Source Code")
	})
	t.Run("toolkit", func(t *testing.T) {
		_, body := s.get(t, "/fragments/toolkit?skill=2")
		assert.Contains(t, body, "PostgreSQL")
		assert.NotContains(t, body, "FastAPI")
	})
}

var hxAttrPattern = regexp.MustCompile(`(hx-[a-z-]+)="([^"]*)"`)

// hxValues returns the unescaped values of every attr attribute in body
func hxValues(body, attr string) []string {
	var values []string
	for _, m := range hxAttrPattern.FindAllStringSubmatch(body, -1) {
		if m[1] == attr {
			values = append(values, html.UnescapeString(m[2]))
		}
	}
	return values
}

// hxValue returns the first attr value in body starting with prefix
func hxValue(t *testing.T, body, attr, prefix string) string {
	t.Helper()
	for _, v := range hxValues(body, attr) {
		if strings.HasPrefix(v, prefix) {
			return v
		}
	}
	require.Failf(t, "attribute not found", "no %s starting with %q", attr, prefix)
	return ""
}

func TestModalKeepsCategoryAcrossOpenAndClose(t *testing.T) {
	s := newTestServer(t)

	_, page := s.get(t, "/?category=web-app")
	open := hxValue(t, page, "hx-get", "/fragments/projects/stocksync")
	assert.Contains(t, open, "category=web-app")

	status, modal := s.get(t, open)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, modal, "View Source Code")

	pushes := hxValues(modal, "hx-push-url")
	require.Len(t, pushes, 2)
	for _, push := range pushes {
		assert.Equal(t, "/?category=web-app#projects", push)
	}

	closeURL := hxValue(t, modal, "hx-get", "/fragments/modal/close")
	assert.Contains(t, closeURL, "category=web-app")

	status, closed := s.get(t, closeURL)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, closed, `id="project-modal"`)
	assert.NotContains(t, closed, "View Source Code")
}

func TestNavbarFragmentKeepsMenuOpen(t *testing.T) {
	s := newTestServer(t)

	_, page := s.get(t, "/?menu=open")
	assert.Contains(t, page, "nav-mobile")

	navURL := hxValue(t, page, "hx-get", "/fragments/navbar")
	require.Contains(t, navURL, "menu=open")

	// htmx appends hx-vals to the existing query
	_, nav := s.get(t, navURL+"&scrollY=100")
	assert.Contains(t, nav, "navbar-scrolled")
	assert.Contains(t, nav, "nav-mobile")
}

func TestGalleryFragmentLeavesModalAlone(t *testing.T) {
	s := newTestServer(t)

	_, page := s.get(t, "/")
	assert.Equal(t, 1, strings.Count(page, `id="project-modal"`))
	assert.Equal(t, 1, strings.Count(page, `id="project-gallery"`))

	tab := hxValue(t, page, "hx-get", "/fragments/projects?category=web-app")
	status, gallery := s.get(t, tab)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, strings.Count(gallery, `id="project-gallery"`))
	assert.NotContains(t, gallery, `id="project-modal"`)
	assert.Contains(t, gallery, `id="project-stocksync"`)
	assert.NotContains(t, gallery, `id="project-libread"`)

	open := hxValue(t, gallery, "hx-get", "/fragments/projects/stocksync")
	assert.Contains(t, open, "category=web-app")
}

func TestToolkitFragmentKeepsCategory(t *testing.T) {
	s := newTestServer(t)

	_, page := s.get(t, "/?category=tool")
	toggle := hxValue(t, page, "hx-get", "/fragments/toolkit")
	assert.Contains(t, toggle, "category=tool")
	assert.Contains(t, toggle, "skill=-1")

	_, toolkit := s.get(t, toggle)
	assert.NotContains(t, toolkit, "accordion-body")
	assert.Contains(t, hxValue(t, toolkit, "hx-get", "/fragments/toolkit"), "category=tool")
}

func TestAPI(t *testing.T) {
	s := newTestServer(t)

	status, body := s.get(t, "/api/projects?category=platform")
	assert.Equal(t, http.StatusOK, status)
	var projects []models.Project
	require.NoError(t, json.Unmarshal([]byte(body), &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "libread", projects[0].ID)
	assert.Equal(t, "syntaxmem", projects[1].ID)

	status, _ = s.get(t, "/api/projects?category=games")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.get(t, "/api/projects/mp3ninja")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"title":"MP3Ninja"`)

	status, _ = s.get(t, "/api/projects/nope")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.get(t, "/api/categories")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"label":"All Projects"`)

	status, _ = s.get(t, "/api/health")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.get(t, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestVisitTrackingAndStats(t *testing.T) {
	s := newTestServer(t)

	s.get(t, "/")
	s.get(t, "/?category=tool")
	s.get(t, "/", "DNT", "1")
	s.get(t, "/fragments/navbar")
	s.tracker.Wait()

	status, body := s.get(t, "/api/stats")
	assert.Equal(t, http.StatusOK, status)
	var stats models.VisitStats
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Unique)
}

func postContact(t *testing.T, s *testServer, form url.Values, htmx bool) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.URL+"/contact", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestContact(t *testing.T) {
	s := newTestServer(t)

	status, body := postContact(t, s, url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Let's build something."},
	}, true)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Thank you for your message")
	assert.NotContains(t, body, "<html")

	messages, err := s.db.ListContactMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Ada", messages[0].Name)
}

func TestContactInvalid(t *testing.T) {
	s := newTestServer(t)

	status, body := postContact(t, s, url.Values{"name": {"Ada"}, "email": {"nope"}}, true)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "field-error")
	assert.Contains(t, body, `value="Ada"`)

	status, body = postContact(t, s, url.Values{"name": {"Ada"}}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "<html")

	messages, err := s.db.ListContactMessages(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
