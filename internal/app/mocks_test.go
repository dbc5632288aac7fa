package app_test

import (
	"context"
	"errors"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks (function-fields pattern)
// ---------------------------------------------------------------------------

type mockDiary struct {
	addWeightFn   func(ctx context.Context, e domain.WeightEntry) error
	addMealFn     func(ctx context.Context, e domain.MealEntry) error
	clearAllFn    func(ctx context.Context) error
	setReminderFn func(ctx context.Context, slot domain.ReminderSlot, t *domain.ReminderTime) error
	weightsFn     func() []domain.WeightEntry
	mealsFn       func() []domain.MealEntry
	reminderFn    func(slot domain.ReminderSlot) *domain.ReminderTime
}

func (m *mockDiary) AddWeight(ctx context.Context, e domain.WeightEntry) error {
	if m.addWeightFn != nil {
		return m.addWeightFn(ctx, e)
	}
	return nil
}

func (m *mockDiary) AddMeal(ctx context.Context, e domain.MealEntry) error {
	if m.addMealFn != nil {
		return m.addMealFn(ctx, e)
	}
	return nil
}

func (m *mockDiary) ClearAll(ctx context.Context) error {
	if m.clearAllFn != nil {
		return m.clearAllFn(ctx)
	}
	return nil
}

func (m *mockDiary) SetReminder(ctx context.Context, slot domain.ReminderSlot, t *domain.ReminderTime) error {
	if m.setReminderFn != nil {
		return m.setReminderFn(ctx, slot, t)
	}
	return nil
}

func (m *mockDiary) Weights() []domain.WeightEntry {
	if m.weightsFn != nil {
		return m.weightsFn()
	}
	return nil
}

func (m *mockDiary) Meals() []domain.MealEntry {
	if m.mealsFn != nil {
		return m.mealsFn()
	}
	return nil
}

func (m *mockDiary) Reminder(slot domain.ReminderSlot) *domain.ReminderTime {
	if m.reminderFn != nil {
		return m.reminderFn(slot)
	}
	return nil
}

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, email, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, errors.New("not found")
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}
