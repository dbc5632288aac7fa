package adapthttp

import (
	"net/http"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

type reminderView struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func reminderOut(t *domain.ReminderTime) *reminderView {
	if t == nil {
		return nil
	}
	return &reminderView{Hour: t.Hour, Minute: t.Minute}
}

func (s *Server) handleRemindersGet(w http.ResponseWriter, _ *http.Request) {
	am, pm := s.reminders.Reminders()
	writeJSON(w, http.StatusOK, map[string]any{
		"am": reminderOut(am),
		"pm": reminderOut(pm),
	})
}

// handleRemindersPut updates one or both slots. An absent key leaves the slot
// unchanged; an explicit null clears it.
func (s *Server) handleRemindersPut(w http.ResponseWriter, r *http.Request) {
	var body map[string]*reminderView
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	for key := range body {
		if !domain.ReminderSlot(key).Valid() {
			writeError(w, http.StatusBadRequest, &domain.ValidationError{Field: key, Reason: "unknown reminder slot"})
			return
		}
	}

	for _, slot := range []domain.ReminderSlot{domain.ReminderAM, domain.ReminderPM} {
		v, ok := body[string(slot)]
		if !ok {
			continue
		}
		var t *domain.ReminderTime
		if v != nil {
			t = &domain.ReminderTime{Hour: v.Hour, Minute: v.Minute}
		}
		if err := s.reminders.Set(r.Context(), slot, t); err != nil {
			writeError(w, statusForError(err), err)
			return
		}
	}

	am, pm := s.reminders.Reminders()
	writeJSON(w, http.StatusOK, map[string]any{
		"am": reminderOut(am),
		"pm": reminderOut(pm),
	})
}
