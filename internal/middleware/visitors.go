package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/models"
)

// VisitRecorder stores page views
type VisitRecorder interface {
	InsertVisit(ctx context.Context, v *models.Visit) error
}

// untrackedPrefixes are never recorded as page views
var untrackedPrefixes = []string{
	"/static/",
	"/fragments/",
	"/api/",
	"/healthz",
	"/favicon",
	"/contact",
}

// VisitorTracker records page views with the client IP hashed. Requests
// carrying "DNT: 1" are not recorded.
type VisitorTracker struct {
	recorder VisitRecorder
	salt     string
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewVisitorTracker(recorder VisitRecorder, salt string) *VisitorTracker {
	return &VisitorTracker{recorder: recorder, salt: salt, now: time.Now}
}

// HashIP returns the first 16 hex characters of sha256(ip + salt). The
// same ip and salt always produce the same hash.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// ShouldTrack reports whether r is a page view worth recording
func ShouldTrack(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.Header.Get("DNT") == "1" {
		return false
	}
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware records the visit in the background and calls next
func (t *VisitorTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ShouldTrack(r) {
			visit := &models.Visit{
				HashedIP:  HashIP(clientIP(r), t.salt),
				UserAgent: r.UserAgent(),
				Path:      r.URL.Path,
				Timestamp: t.now(),
			}
			t.wg.Add(1)
			go t.record(visit)
		}
		next.ServeHTTP(w, r)
	})
}

func (t *VisitorTracker) record(v *models.Visit) {
	defer t.wg.Done()
	defer logging.LogPanics(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.recorder.InsertVisit(ctx, v); err != nil {
		logging.Warn().Err(err).Str("path", v.Path).Msg("Failed to record visit")
	}
}

// Wait blocks until every visit handed to the background has been stored
func (t *VisitorTracker) Wait() {
	t.wg.Wait()
}
