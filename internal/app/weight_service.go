package app

import (
	"context"
	"fmt"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
	"github.com/TKJapan/diet-mvp/internal/metrics"
)

// Accepted weight range at the input boundary. The repository itself does not
// re-check this.
const (
	MinKilograms = 30.0
	MaxKilograms = 300.0
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	diary Diary
}

// NewWeightService creates a WeightService backed by the given diary.
func NewWeightService(diary Diary) *WeightService {
	return &WeightService{diary: diary}
}

// RecordWeight validates and appends a weight measurement.
func (s *WeightService) RecordWeight(ctx context.Context, kg float64, tod domain.TimeOfDay, at time.Time) (domain.WeightEntry, error) {
	if kg < MinKilograms || kg > MaxKilograms {
		return domain.WeightEntry{}, &domain.ValidationError{
			Field:  "kg",
			Reason: fmt.Sprintf("must be between %v and %v", MinKilograms, MaxKilograms),
		}
	}
	if !tod.Valid() {
		return domain.WeightEntry{}, &domain.ValidationError{Field: "timeOfDay", Reason: `must be "am" or "pm"`}
	}

	e := domain.WeightEntry{Timestamp: at, TimeOfDay: tod, Kilograms: kg}
	if err := s.diary.AddWeight(ctx, e); err != nil {
		return domain.WeightEntry{}, err
	}
	return e, nil
}

// TodaySnapshot returns the latest AM and PM readings for now's calendar day,
// either of which may be nil.
func (s *WeightService) TodaySnapshot(now time.Time) (am, pm *domain.WeightEntry) {
	return metrics.TodaysWeights(s.diary.Weights(), now)
}
