package adapthttp

import (
	"net/http"
	"time"

	"github.com/TKJapan/diet-mvp/internal/app"
)

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	days := s.summary.History()
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	window := intQuery(r, "window", app.DefaultTrendWindow)
	series, avg := s.summary.Trend(window)
	// avg stays null when no day has data.
	writeJSON(w, http.StatusOK, map[string]any{
		"window":  window,
		"series":  series,
		"average": avg,
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"days": s.summary.Streak(time.Now())})
}

func (s *Server) handleDataClear(w http.ResponseWriter, r *http.Request) {
	if err := s.summary.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
