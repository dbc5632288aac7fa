package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ReminderSlot selects one of the two stored reminder preferences.
type ReminderSlot string

const (
	ReminderAM ReminderSlot = "am"
	ReminderPM ReminderSlot = "pm"
)

// Valid reports whether s names a known reminder slot.
func (s ReminderSlot) Valid() bool {
	return s == ReminderAM || s == ReminderPM
}

// Key returns the persisted key for the slot.
func (s ReminderSlot) Key() string {
	if s == ReminderAM {
		return KeyRemindAM
	}
	return KeyRemindPM
}

// ReminderTime is a wall-clock reminder preference. Absence of a preference is
// represented by a nil *ReminderTime, never by a zero value.
type ReminderTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String renders the stored wire form: unpadded hour, zero-padded minute.
func (t ReminderTime) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// ParseReminderTime parses an "H:MM" string into a ReminderTime.
func ParseReminderTime(s string) (ReminderTime, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return ReminderTime{}, &ValidationError{Field: "reminder", Reason: fmt.Sprintf("malformed time %q", s)}
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return ReminderTime{}, &ValidationError{Field: "reminder", Reason: fmt.Sprintf("hour out of range in %q", s)}
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return ReminderTime{}, &ValidationError{Field: "reminder", Reason: fmt.Sprintf("minute out of range in %q", s)}
	}
	return ReminderTime{Hour: hour, Minute: minute}, nil
}
