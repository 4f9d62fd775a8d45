package handlers

import (
	"net/http"
	"time"

	"musyoka.dev/internal/db"
	"musyoka.dev/internal/logging"
)

// StatsHandler reports visitor counts
type StatsHandler struct {
	db  *db.DB
	now func() time.Time
}

func NewStatsHandler(database *db.DB, now func() time.Time) *StatsHandler {
	return &StatsHandler{db: database, now: now}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, "Visitor tracking is disabled")
		return
	}

	stats, err := h.db.VisitStats(r.Context(), h.now())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load visit stats")
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
