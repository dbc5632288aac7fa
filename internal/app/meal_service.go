package app

import (
	"context"
	"strings"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
	"github.com/TKJapan/diet-mvp/internal/metrics"
)

// MealService encapsulates meal-logging use cases.
type MealService struct {
	diary Diary
}

// NewMealService creates a MealService backed by the given diary.
func NewMealService(diary Diary) *MealService {
	return &MealService{diary: diary}
}

// RecordMeal validates and appends a meal note. kcal may be nil when the
// calorie count is unknown.
func (s *MealService) RecordMeal(ctx context.Context, note string, kcal *int, at time.Time) (domain.MealEntry, error) {
	if strings.TrimSpace(note) == "" {
		return domain.MealEntry{}, &domain.ValidationError{Field: "note", Reason: "must not be empty"}
	}
	if kcal != nil && *kcal < 0 {
		return domain.MealEntry{}, &domain.ValidationError{Field: "kcal", Reason: "must not be negative"}
	}

	var kc *int
	if kcal != nil {
		v := *kcal
		kc = &v
	}
	e := domain.MealEntry{Timestamp: at, Note: note, Kilocalories: kc}
	if err := s.diary.AddMeal(ctx, e); err != nil {
		return domain.MealEntry{}, err
	}
	return e, nil
}

// TodayCalories sums the recorded calories for now's calendar day.
func (s *MealService) TodayCalories(now time.Time) int {
	return metrics.TodaysCalories(s.diary.Meals(), now)
}
