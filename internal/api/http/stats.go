package http

import (
	"net/http"

	"github.com/spartech-ventures/sertie-eval/internal/evaluation"
)

// GET /api/stats
func StatsHandler(store evaluation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
