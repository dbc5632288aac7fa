// Package memory implements the store and auth repositories in memory, for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

// DB implements domain.Store and the auth repositories without any durable
// medium. Saves replace whole lists, so the atomicity the repository relies
// on holds trivially.
type DB struct {
	mu       sync.Mutex
	weights  []string
	meals    []string
	remindAM string
	remindPM string

	users         []*domain.User
	sessions      map[string]*domain.Session
	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{sessions: make(map[string]*domain.Session)}
}

// Ensure interfaces are met.
var _ domain.Store = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- Store ---

// Load returns the current persisted state.
func (db *DB) Load(ctx context.Context) (*domain.StoreState, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	state := &domain.StoreState{
		Weights:  make([]string, len(db.weights)),
		Meals:    make([]string, len(db.meals)),
		RemindAM: db.remindAM,
		RemindPM: db.remindPM,
	}
	copy(state.Weights, db.weights)
	copy(state.Meals, db.meals)
	return state, nil
}

// SaveWeights replaces the stored weight list.
func (db *DB) SaveWeights(ctx context.Context, records []string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.weights = append([]string(nil), records...)
	return nil
}

// SaveMeals replaces the stored meal list.
func (db *DB) SaveMeals(ctx context.Context, records []string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.meals = append([]string(nil), records...)
	return nil
}

// SaveReminder stores one reminder slot; an empty value clears it.
func (db *DB) SaveReminder(ctx context.Context, slot domain.ReminderSlot, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	switch slot {
	case domain.ReminderAM:
		db.remindAM = value
	case domain.ReminderPM:
		db.remindPM = value
	default:
		return &domain.StorageError{Op: "save reminder", Err: errors.New("unknown slot " + string(slot))}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (db *DB) Close() error { return nil }

// --- UserRepository ---

// GetByUsername retrieves a user by username. Returns nil when not found.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence on top of DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token, dropping it when expired.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
