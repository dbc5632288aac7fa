package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "dietlog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoadEmpty(t *testing.T) {
	db := openTestDB(t)

	state, err := db.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(state.Weights) != 0 || len(state.Meals) != 0 {
		t.Errorf("fresh db not empty: %+v", state)
	}
	if state.RemindAM != "" || state.RemindPM != "" {
		t.Errorf("fresh db has reminders: %+v", state)
	}
}

func TestSaveAndLoadLists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	weights := []string{
		`{"t":"2024-05-09T21:00:00Z","tod":"pm","kg":72}`,
		`{"t":"2024-05-10T07:30:00Z","tod":"am","kg":71}`,
	}
	if err := db.SaveWeights(ctx, weights); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	if err := db.SaveMeals(ctx, []string{`{"t":"2024-05-10T12:00:00Z","n":"lunch","k":null}`}); err != nil {
		t.Fatalf("SaveMeals: %v", err)
	}

	state, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(state.Weights) != 2 {
		t.Fatalf("expected 2 weights, got %d", len(state.Weights))
	}
	// Order must follow the saved sequence.
	for i, want := range weights {
		if state.Weights[i] != want {
			t.Errorf("weights[%d] = %s, want %s", i, state.Weights[i], want)
		}
	}
	if len(state.Meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(state.Meals))
	}

	// A later save fully replaces the list.
	if err := db.SaveWeights(ctx, weights[1:]); err != nil {
		t.Fatalf("SaveWeights replace: %v", err)
	}
	state, _ = db.Load(ctx)
	if len(state.Weights) != 1 || state.Weights[0] != weights[1] {
		t.Errorf("replace failed: %v", state.Weights)
	}

	// Saving nil erases the key.
	if err := db.SaveWeights(ctx, nil); err != nil {
		t.Fatalf("SaveWeights(nil): %v", err)
	}
	state, _ = db.Load(ctx)
	if len(state.Weights) != 0 {
		t.Errorf("erase failed: %v", state.Weights)
	}
}

func TestSaveReminder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SaveReminder(ctx, domain.ReminderAM, "7:30"); err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}
	if err := db.SaveReminder(ctx, domain.ReminderAM, "8:00"); err != nil {
		t.Fatalf("SaveReminder overwrite: %v", err)
	}
	state, _ := db.Load(ctx)
	if state.RemindAM != "8:00" || state.RemindPM != "" {
		t.Errorf("reminders = %q / %q", state.RemindAM, state.RemindPM)
	}

	if err := db.SaveReminder(ctx, domain.ReminderAM, ""); err != nil {
		t.Fatalf("SaveReminder clear: %v", err)
	}
	state, _ = db.Load(ctx)
	if state.RemindAM != "" {
		t.Errorf("clear failed: %q", state.RemindAM)
	}

	if err := db.SaveReminder(ctx, "noon", "1:00"); err == nil {
		t.Error("expected error for unknown slot")
	}
}

func TestAuthRepos(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := db.Create(ctx, "alex", "alex@example.com", "hash")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	if _, err := db.Create(ctx, "alex", "", "other"); err == nil {
		t.Error("expected unique constraint violation")
	}
	got, err := db.GetByUsername(ctx, "alex")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByUsername = %v, %v", got, err)
	}
	if n, _ := db.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	sessions := NewSessionRepo(db)
	if err := sessions.Create(ctx, u.ID, "tok", "agent", "127.0.0.1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create session: %v", err)
	}
	s, err := sessions.GetByToken(ctx, "tok")
	if err != nil || s == nil || s.UserID != u.ID {
		t.Fatalf("GetByToken = %v, %v", s, err)
	}
	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, _ := sessions.GetByToken(ctx, "tok"); s != nil {
		t.Error("session survived delete")
	}
}
