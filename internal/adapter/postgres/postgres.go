package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

// DB wraps a *sql.DB and implements domain.Store plus the auth repositories,
// for installs that keep the diary in a shared PostgreSQL instance.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Err: err}
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, &domain.StorageError{Op: "open", Err: err}
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, &domain.StorageError{Op: "migrate", Err: err}
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS entries (kind TEXT NOT NULL, seq INTEGER NOT NULL, record TEXT NOT NULL, PRIMARY KEY (kind, seq));",
		"CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, email TEXT NOT NULL DEFAULT '', password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var _ domain.Store = (*DB)(nil)

// Load reads the whole persisted state.
func (d *DB) Load(ctx context.Context) (*domain.StoreState, error) {
	state := &domain.StoreState{}

	var err error
	if state.Weights, err = d.loadList(ctx, domain.KeyWeights); err != nil {
		return nil, err
	}
	if state.Meals, err = d.loadList(ctx, domain.KeyMeals); err != nil {
		return nil, err
	}
	if state.RemindAM, err = d.setting(ctx, domain.KeyRemindAM); err != nil {
		return nil, err
	}
	if state.RemindPM, err = d.setting(ctx, domain.KeyRemindPM); err != nil {
		return nil, err
	}
	return state, nil
}

func (d *DB) loadList(ctx context.Context, key string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT record FROM entries WHERE kind = $1 ORDER BY seq;", key)
	if err != nil {
		return nil, &domain.StorageError{Op: "load " + key, Err: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, &domain.StorageError{Op: "load " + key, Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "load " + key, Err: err}
	}
	return out, nil
}

func (d *DB) setting(ctx context.Context, key string) (string, error) {
	var v string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = $1;", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &domain.StorageError{Op: "load " + key, Err: err}
	}
	return v, nil
}

func (d *DB) saveList(ctx context.Context, key string, records []string) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "save " + key, Err: err}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE kind = $1;", key); err != nil {
		_ = tx.Rollback()
		return &domain.StorageError{Op: "save " + key, Err: err}
	}
	for i, rec := range records {
		if _, err := tx.ExecContext(ctx, "INSERT INTO entries(kind, seq, record) VALUES($1, $2, $3);", key, i, rec); err != nil {
			_ = tx.Rollback()
			return &domain.StorageError{Op: "save " + key, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "save " + key, Err: err}
	}
	return nil
}

// SaveWeights replaces the stored weight list.
func (d *DB) SaveWeights(ctx context.Context, records []string) error {
	return d.saveList(ctx, domain.KeyWeights, records)
}

// SaveMeals replaces the stored meal list.
func (d *DB) SaveMeals(ctx context.Context, records []string) error {
	return d.saveList(ctx, domain.KeyMeals, records)
}

// SaveReminder stores one reminder slot; an empty value erases the key.
func (d *DB) SaveReminder(ctx context.Context, slot domain.ReminderSlot, value string) error {
	if !slot.Valid() {
		return &domain.StorageError{Op: "save reminder", Err: errors.New("unknown slot " + string(slot))}
	}
	key := slot.Key()
	if value == "" {
		if _, err := d.sql.ExecContext(ctx, "DELETE FROM settings WHERE key = $1;", key); err != nil {
			return &domain.StorageError{Op: "save " + key, Err: err}
		}
		return nil
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO settings(key, value) VALUES($1, $2) ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value;",
		key, value,
	)
	if err != nil {
		return &domain.StorageError{Op: "save " + key, Err: err}
	}
	return nil
}
