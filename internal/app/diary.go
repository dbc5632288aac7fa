// Package app holds the application services and business logic.
package app

import (
	"context"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

// Diary is the slice of the repository the services consume. Implemented by
// *repo.Diary.
type Diary interface {
	AddWeight(ctx context.Context, e domain.WeightEntry) error
	AddMeal(ctx context.Context, e domain.MealEntry) error
	ClearAll(ctx context.Context) error
	SetReminder(ctx context.Context, slot domain.ReminderSlot, t *domain.ReminderTime) error
	Weights() []domain.WeightEntry
	Meals() []domain.MealEntry
	Reminder(slot domain.ReminderSlot) *domain.ReminderTime
}
