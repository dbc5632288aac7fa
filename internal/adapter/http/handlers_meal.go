package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleMealCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Note         string `json:"note"`
		Kilocalories *int   `json:"kilocalories"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.meal.RecordMeal(r.Context(), body.Note, body.Kilocalories, time.Now())
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleMealToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]any{
		"today":        localDayString(now),
		"kilocalories": s.meal.TodayCalories(now),
	})
}
