package http

import (
	"net/http"

	"github.com/spartech-ventures/sertie-eval/internal/audit"
)

// GET /api/audit?limit=50
// Newest events first, for reviewing who changed applicant outcomes and when.
func RecentEventsHandler(trail Trail) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := trail.Recent(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if events == nil {
			events = []audit.Event{}
		}
		writeJSON(w, http.StatusOK, events)
	}
}
