package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	syncx "github.com/edukita/educbt-studio/internal/sync"
)

// EventsHandler returns the recent audit trail for one workspace, newest
// first. limit defaults to 50.
func EventsHandler(events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		evs, err := events.Recent(r.Context(), chi.URLParam(r, "workspaceID"), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if evs == nil {
			evs = []syncx.Event{}
		}
		writeJSON(w, evs)
	}
}
