package adapthttp

import "net/http"

func (s *Server) handleAnalyticsDrift(w http.ResponseWriter, r *http.Request) {
	asOf, err := timeQuery(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.analytics.Drift(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"drift": report})
}

func (s *Server) handleAnalyticsDescent(w http.ResponseWriter, r *http.Request) {
	asOf, err := timeQuery(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := s.analytics.Descent(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"descent": snap})
}

func (s *Server) handleAnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	asOf, err := timeQuery(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	d, err := s.analytics.Dashboard(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dashboard": d})
}
