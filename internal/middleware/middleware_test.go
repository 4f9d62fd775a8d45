package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"musyoka.dev/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	h = Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("kaboom"))
	}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecoveryLogsPanicValueVerbatim(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("disk 100% full")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "Recovered from panic with value: disk 100% full")
	assert.NotContains(t, buf.String(), "%!")
}

func TestLogger(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestHashIP(t *testing.T) {
	a := HashIP("203.0.113.7", "salt")
	assert.Len(t, a, 16)
	assert.Equal(t, a, HashIP("203.0.113.7", "salt"))
	assert.NotEqual(t, a, HashIP("203.0.113.8", "salt"))
	assert.NotEqual(t, a, HashIP("203.0.113.7", "pepper"))
}

func TestShouldTrack(t *testing.T) {
	items := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		track   bool
	}{
		{"home", http.MethodGet, "/", nil, true},
		{"project page", http.MethodGet, "/projects/libread", nil, true},
		{"static", http.MethodGet, "/static/css/site.css", nil, false},
		{"fragment", http.MethodGet, "/fragments/navbar", nil, false},
		{"api", http.MethodGet, "/api/projects", nil, false},
		{"post", http.MethodPost, "/contact", nil, false},
		{"dnt", http.MethodGet, "/", map[string]string{"DNT": "1"}, false},
		{"htmx", http.MethodGet, "/", map[string]string{"HX-Request": "true"}, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			r := httptest.NewRequest(item.method, item.path, nil)
			for k, v := range item.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, item.track, ShouldTrack(r))
		})
	}
}

type memRecorder struct {
	mu     sync.Mutex
	visits []*models.Visit
}

func (m *memRecorder) InsertVisit(ctx context.Context, v *models.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits = append(m.visits, v)
	return nil
}

func TestVisitorTracker(t *testing.T) {
	rec := &memRecorder{}
	tracker := NewVisitorTracker(rec, "salt")
	h := tracker.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5555"
	r.Header.Set("User-Agent", "test-agent")
	h.ServeHTTP(httptest.NewRecorder(), r)

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	h.ServeHTTP(httptest.NewRecorder(), dnt)

	tracker.Wait()

	if assert.Len(t, rec.visits, 1) {
		v := rec.visits[0]
		assert.Equal(t, HashIP("203.0.113.7", "salt"), v.HashedIP)
		assert.Equal(t, "test-agent", v.UserAgent)
		assert.Equal(t, "/", v.Path)
	}
}
