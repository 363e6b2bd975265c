package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cutplan/internal/app"
)

func (s *Server) handleLogCreate(w http.ResponseWriter, r *http.Request) {
	var in app.RecordInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.logs.Record(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if s.metrics != nil {
		s.metrics.CounterLogEntries.Inc()
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleLogRange(w http.ResponseWriter, r *http.Request) {
	from, err := timeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := timeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Default window: the last 7 days.
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -7)
	if from != nil {
		start = *from
	}

	items, err := s.logs.ListRange(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "from": start, "to": end})
}

func (s *Server) handleLogRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 20)
	items, err := s.logs.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleLogUndoLast(w http.ResponseWriter, r *http.Request) {
	entry, err := s.logs.UndoLast(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entry": entry})
}

func (s *Server) handleLogDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := s.logs.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
