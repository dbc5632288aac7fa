// Package domain contains the core business entities and ports.
package domain

import (
	"encoding/json"
	"time"
)

// TimeOfDay distinguishes morning and evening weigh-ins.
type TimeOfDay string

const (
	AM TimeOfDay = "am"
	PM TimeOfDay = "pm"
)

// Valid reports whether t is one of the two known slots.
func (t TimeOfDay) Valid() bool {
	return t == AM || t == PM
}

// WeightEntry represents a single weight measurement. Entries are immutable
// once constructed; the repository only ever appends them.
type WeightEntry struct {
	Timestamp time.Time `json:"timestamp"`
	TimeOfDay TimeOfDay `json:"timeOfDay"`
	Kilograms float64   `json:"kilograms"`
}

// MealEntry represents a logged meal with an optional calorie count. A nil
// Kilocalories means the count was not recorded, which is distinct from zero.
type MealEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	Note         string    `json:"note"`
	Kilocalories *int      `json:"kilocalories"`
}

// Stored record shapes. Pointer fields let deserialization distinguish a
// missing field from a zero value, and keep the meal calorie count as an
// explicit null on the wire rather than an omitted key.
type weightRecord struct {
	T   *string  `json:"t"`
	Tod *string  `json:"tod"`
	Kg  *float64 `json:"kg"`
}

type mealRecord struct {
	T *string `json:"t"`
	N *string `json:"n"`
	K *int    `json:"k"`
}

// Record serializes the entry to its flat stored form.
func (e WeightEntry) Record() (string, error) {
	t := e.Timestamp.Format(time.RFC3339Nano)
	tod := string(e.TimeOfDay)
	kg := e.Kilograms
	b, err := json.Marshal(weightRecord{T: &t, Tod: &tod, Kg: &kg})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Record serializes the entry to its flat stored form.
func (e MealEntry) Record() (string, error) {
	t := e.Timestamp.Format(time.RFC3339Nano)
	n := e.Note
	b, err := json.Marshal(mealRecord{T: &t, N: &n, K: e.Kilocalories})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseWeightRecord deserializes a stored weight record. It is the exact
// inverse of WeightEntry.Record.
func ParseWeightRecord(s string) (WeightEntry, error) {
	var rec weightRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return WeightEntry{}, &DeserializationError{Kind: "weight", Field: "record", Err: err}
	}
	if rec.T == nil {
		return WeightEntry{}, &DeserializationError{Kind: "weight", Field: "t"}
	}
	ts, err := time.Parse(time.RFC3339Nano, *rec.T)
	if err != nil {
		return WeightEntry{}, &DeserializationError{Kind: "weight", Field: "t", Err: err}
	}
	if rec.Tod == nil || !TimeOfDay(*rec.Tod).Valid() {
		return WeightEntry{}, &DeserializationError{Kind: "weight", Field: "tod"}
	}
	if rec.Kg == nil {
		return WeightEntry{}, &DeserializationError{Kind: "weight", Field: "kg"}
	}
	return WeightEntry{Timestamp: ts, TimeOfDay: TimeOfDay(*rec.Tod), Kilograms: *rec.Kg}, nil
}

// ParseMealRecord deserializes a stored meal record. It is the exact inverse
// of MealEntry.Record.
func ParseMealRecord(s string) (MealEntry, error) {
	var rec mealRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return MealEntry{}, &DeserializationError{Kind: "meal", Field: "record", Err: err}
	}
	if rec.T == nil {
		return MealEntry{}, &DeserializationError{Kind: "meal", Field: "t"}
	}
	ts, err := time.Parse(time.RFC3339Nano, *rec.T)
	if err != nil {
		return MealEntry{}, &DeserializationError{Kind: "meal", Field: "t", Err: err}
	}
	if rec.N == nil || *rec.N == "" {
		return MealEntry{}, &DeserializationError{Kind: "meal", Field: "n"}
	}
	if rec.K != nil && *rec.K < 0 {
		return MealEntry{}, &DeserializationError{Kind: "meal", Field: "k"}
	}
	return MealEntry{Timestamp: ts, Note: *rec.N, Kilocalories: rec.K}, nil
}
