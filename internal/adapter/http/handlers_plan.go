package adapthttp

import "net/http"

func (s *Server) handlePlanDay(w http.ResponseWriter, r *http.Request) {
	asOf, err := timeQuery(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	plan, err := s.plan.DayPlan(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan": plan})
}

func (s *Server) handlePlanRehydration(w http.ResponseWriter, r *http.Request) {
	asOf, err := timeQuery(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.plan.Rehydration(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rehydration": res})
}
