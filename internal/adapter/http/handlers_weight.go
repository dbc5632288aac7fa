package adapthttp

import (
	"net/http"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

type weightView struct {
	Timestamp time.Time        `json:"timestamp"`
	TimeOfDay domain.TimeOfDay `json:"timeOfDay"`
	Value     float64          `json:"value"`
	Unit      string           `json:"unit"`
}

func weightInUnit(e *domain.WeightEntry, unit string) *weightView {
	if e == nil {
		return nil
	}
	return &weightView{
		Timestamp: e.Timestamp,
		TimeOfDay: e.TimeOfDay,
		Value:     domain.ConvertWeight(e.Kilograms, "kg", unit),
		Unit:      unit,
	}
}

func (s *Server) handleWeightToday(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	switch unit {
	case "", "kg":
		unit = "kg"
	case "lb":
	default:
		writeError(w, http.StatusBadRequest, &domain.ValidationError{Field: "unit", Reason: `must be "kg" or "lb"`})
		return
	}

	now := time.Now()
	am, pm := s.weight.TodaySnapshot(now)
	writeJSON(w, http.StatusOK, map[string]any{
		"today": localDayString(now),
		"am":    weightInUnit(am, unit),
		"pm":    weightInUnit(pm, unit),
	})
}

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kilograms float64 `json:"kilograms"`
		TimeOfDay string  `json:"timeOfDay"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.weight.RecordWeight(r.Context(), body.Kilograms, domain.TimeOfDay(body.TimeOfDay), time.Now())
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}
