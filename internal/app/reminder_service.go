package app

import (
	"context"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

// ReminderService manages the two stored reminder-time preferences.
type ReminderService struct {
	diary Diary
}

// NewReminderService creates a ReminderService backed by the given diary.
func NewReminderService(diary Diary) *ReminderService {
	return &ReminderService{diary: diary}
}

// Reminders returns the current AM and PM preferences; nil means unset.
func (s *ReminderService) Reminders() (am, pm *domain.ReminderTime) {
	return s.diary.Reminder(domain.ReminderAM), s.diary.Reminder(domain.ReminderPM)
}

// Set updates one slot, leaving the other untouched. A nil time clears the
// slot.
func (s *ReminderService) Set(ctx context.Context, slot domain.ReminderSlot, t *domain.ReminderTime) error {
	if !slot.Valid() {
		return &domain.ValidationError{Field: "slot", Reason: `must be "am" or "pm"`}
	}
	if t != nil {
		if t.Hour < 0 || t.Hour > 23 {
			return &domain.ValidationError{Field: "hour", Reason: "must be within 0-23"}
		}
		if t.Minute < 0 || t.Minute > 59 {
			return &domain.ValidationError{Field: "minute", Reason: "must be within 0-59"}
		}
	}
	return s.diary.SetReminder(ctx, slot, t)
}
