// Package metrics derives read-only summaries from diary snapshots. All
// functions are pure: they never touch storage and are safe to call from any
// synchronous context.
package metrics

import (
	"sort"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

const dayFormat = "2006-01-02"

func localDay(t time.Time) string {
	return t.In(time.Local).Format(dayFormat)
}

// TodaysWeights returns the last AM and last PM entries for now's calendar
// day, in collection order. Either may be nil when no reading exists.
func TodaysWeights(weights []domain.WeightEntry, now time.Time) (am, pm *domain.WeightEntry) {
	today := localDay(now)
	for i := range weights {
		w := weights[i]
		if localDay(w.Timestamp) != today {
			continue
		}
		e := w
		switch w.TimeOfDay {
		case domain.AM:
			am = &e
		case domain.PM:
			pm = &e
		}
	}
	return am, pm
}

// TodaysCalories sums kilocalories over meals on now's calendar day. Meals
// without a recorded count contribute zero.
func TodaysCalories(meals []domain.MealEntry, now time.Time) int {
	today := localDay(now)
	total := 0
	for _, m := range meals {
		if localDay(m.Timestamp) != today {
			continue
		}
		if m.Kilocalories != nil {
			total += *m.Kilocalories
		}
	}
	return total
}

// DaySummary groups one calendar day's entries for history display.
type DaySummary struct {
	Day   string              `json:"day"`
	AM    *domain.WeightEntry `json:"am"`
	PM    *domain.WeightEntry `json:"pm"`
	Meals []domain.MealEntry  `json:"meals"`
}

// GroupByDay builds per-day summaries from the two collections, newest day
// first. When a day holds several readings for the same slot, the later one in
// collection order wins.
func GroupByDay(weights []domain.WeightEntry, meals []domain.MealEntry) []DaySummary {
	byDay := make(map[string]*DaySummary)
	get := func(day string) *DaySummary {
		d, ok := byDay[day]
		if !ok {
			d = &DaySummary{Day: day}
			byDay[day] = d
		}
		return d
	}

	for i := range weights {
		w := weights[i]
		d := get(localDay(w.Timestamp))
		e := w
		switch w.TimeOfDay {
		case domain.AM:
			d.AM = &e
		case domain.PM:
			d.PM = &e
		}
	}
	for _, m := range meals {
		d := get(localDay(m.Timestamp))
		d.Meals = append(d.Meals, m)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	// Day strings sort chronologically; reverse for newest-first display.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out
}

// DayAverage is one point of the daily-average weight series.
type DayAverage struct {
	Day    string  `json:"day"`
	MeanKg float64 `json:"meanKg"`
}

// DailyAverage computes, for each calendar day with at least one weight entry
// of either slot, the arithmetic mean of that day's readings. The series is
// ordered ascending by day.
func DailyAverage(weights []domain.WeightEntry) []DayAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, w := range weights {
		day := localDay(w.Timestamp)
		sums[day] += w.Kilograms
		counts[day]++
	}

	days := make([]string, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DayAverage, 0, len(days))
	for _, day := range days {
		out = append(out, DayAverage{Day: day, MeanKg: sums[day] / float64(counts[day])})
	}
	return out
}

// TrailingAverage returns the mean of the last window points of a daily
// series, or of the whole series when it is shorter. A nil result means "no
// data" and is distinct from a 0.0 average.
func TrailingAverage(series []DayAverage, window int) *float64 {
	if len(series) == 0 || window <= 0 {
		return nil
	}
	start := len(series) - window
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, p := range series[start:] {
		sum += p.MeanKg
	}
	avg := sum / float64(len(series)-start)
	return &avg
}

// ConsecutiveStreak counts calendar days with at least one weight entry,
// walking backward from today's date and stopping at the first gap. A day
// without an entry for today returns 0.
func ConsecutiveStreak(weights []domain.WeightEntry, today time.Time) int {
	days := make(map[string]bool, len(weights))
	for _, w := range weights {
		days[localDay(w.Timestamp)] = true
	}

	count := 0
	d := today.In(time.Local)
	for days[d.Format(dayFormat)] {
		count++
		d = d.AddDate(0, 0, -1)
	}
	return count
}
