package memory

import (
	"context"
	"testing"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	db := New()
	ctx := context.Background()

	weights := []string{`{"t":"2024-05-10T07:30:00Z","tod":"am","kg":71}`}
	meals := []string{`{"t":"2024-05-10T12:00:00Z","n":"lunch","k":null}`}

	if err := db.SaveWeights(ctx, weights); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	if err := db.SaveMeals(ctx, meals); err != nil {
		t.Fatalf("SaveMeals: %v", err)
	}
	if err := db.SaveReminder(ctx, domain.ReminderAM, "7:30"); err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}

	state, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(state.Weights) != 1 || state.Weights[0] != weights[0] {
		t.Errorf("weights = %v", state.Weights)
	}
	if len(state.Meals) != 1 || state.Meals[0] != meals[0] {
		t.Errorf("meals = %v", state.Meals)
	}
	if state.RemindAM != "7:30" || state.RemindPM != "" {
		t.Errorf("reminders = %q / %q", state.RemindAM, state.RemindPM)
	}

	// Saving an empty list erases the key.
	if err := db.SaveWeights(ctx, nil); err != nil {
		t.Fatalf("SaveWeights(nil): %v", err)
	}
	if err := db.SaveReminder(ctx, domain.ReminderAM, ""); err != nil {
		t.Fatalf("SaveReminder clear: %v", err)
	}
	state, _ = db.Load(ctx)
	if len(state.Weights) != 0 || state.RemindAM != "" {
		t.Errorf("erase failed: %v / %q", state.Weights, state.RemindAM)
	}

	if err := db.SaveReminder(ctx, "noon", "1:00"); err == nil {
		t.Error("expected error for unknown slot")
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "alex", "alex@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}

	if _, err := db.Create(ctx, "alex", "", "hash2"); err == nil {
		t.Error("expected duplicate username error")
	}

	got, err := db.GetByUsername(ctx, "alex")
	if err != nil || got == nil || got.Email != "alex@example.com" {
		t.Errorf("GetByUsername = %v, %v", got, err)
	}
	got, err = db.GetByID(ctx, u.ID)
	if err != nil || got == nil || got.Username != "alex" {
		t.Errorf("GetByID = %v, %v", got, err)
	}
	if got, _ := db.GetByUsername(ctx, "nobody"); got != nil {
		t.Error("expected nil for unknown user")
	}
	if n, _ := db.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, 1, "tok", "agent", "127.0.0.1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s, err := repo.GetByToken(ctx, "tok")
	if err != nil || s == nil || s.UserID != 1 || s.UserAgent != "agent" {
		t.Fatalf("GetByToken = %v, %v", s, err)
	}

	// Expired sessions are dropped on read.
	_ = repo.Create(ctx, 1, "old", "agent", "", time.Now().Add(-time.Minute))
	if s, _ := repo.GetByToken(ctx, "old"); s != nil {
		t.Error("expected expired session to be dropped")
	}

	_ = repo.Delete(ctx, "tok")
	if s, _ := repo.GetByToken(ctx, "tok"); s != nil {
		t.Error("expected deleted session to be gone")
	}

	_ = repo.Create(ctx, 1, "a", "", "", time.Now().Add(-time.Minute))
	_ = repo.Create(ctx, 1, "b", "", "", time.Now().Add(time.Hour))
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "b"); s == nil {
		t.Error("live session removed by DeleteExpired")
	}
}
