package app

import (
	"context"
	"time"

	"github.com/TKJapan/diet-mvp/internal/metrics"
)

// DefaultTrendWindow is the rolling window used for the weight trend when the
// caller does not ask for another size.
const DefaultTrendWindow = 7

// SummaryService exposes the derived read models: history grouping, the
// daily-average trend, and the logging streak.
type SummaryService struct {
	diary Diary
}

// NewSummaryService creates a SummaryService backed by the given diary.
func NewSummaryService(diary Diary) *SummaryService {
	return &SummaryService{diary: diary}
}

// History returns day-grouped entries, newest day first.
func (s *SummaryService) History() []metrics.DaySummary {
	return metrics.GroupByDay(s.diary.Weights(), s.diary.Meals())
}

// Trend returns the ascending daily-average series and the trailing average
// over the last window points. The average is nil when no weights exist.
func (s *SummaryService) Trend(window int) ([]metrics.DayAverage, *float64) {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	series := metrics.DailyAverage(s.diary.Weights())
	return series, metrics.TrailingAverage(series, window)
}

// Streak counts the consecutive calendar days, ending today, with at least
// one weight entry.
func (s *SummaryService) Streak(now time.Time) int {
	return metrics.ConsecutiveStreak(s.diary.Weights(), now)
}

// ClearAll empties both collections. Reminder preferences survive.
func (s *SummaryService) ClearAll(ctx context.Context) error {
	return s.diary.ClearAll(ctx)
}
