package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/TKJapan/diet-mvp/internal/app"
	"github.com/TKJapan/diet-mvp/internal/domain"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	hash := hashPassword(t, "correct-horse")
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				return nil, nil
			}
			return &domain.User{ID: 1, Username: "alice", PasswordHash: hash}, nil
		},
	}
	var created struct {
		userID    int64
		userAgent string
		ip        string
		expiresAt time.Time
	}
	sessions := &mockSessionRepo{
		createFn: func(_ context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			created.userID = userID
			created.userAgent = userAgent
			created.ip = ip
			created.expiresAt = expiresAt
			return nil
		},
	}
	svc := app.NewAuthService(users, sessions, time.Hour)

	token, err := svc.Login(context.Background(), "alice", "correct-horse", "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
	if created.userID != 1 || created.userAgent != "test-agent" || created.ip != "127.0.0.1" {
		t.Errorf("session created with %+v", created)
	}
	if until := time.Until(created.expiresAt); until < 55*time.Minute || until > time.Hour {
		t.Errorf("expiry %v from now, want about 1h", until)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	hash := hashPassword(t, "correct-horse")
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				return nil, nil
			}
			return &domain.User{ID: 1, Username: "alice", PasswordHash: hash}, nil
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{}, time.Hour)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "battery-staple"},
		{"unknown user", "bob", "correct-horse"},
		{"empty password", "alice", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password, "agent", "ip")
			if !errors.Is(err, app.ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateSession(t *testing.T) {
	user := &domain.User{ID: 7, Username: "alice"}
	valid := &domain.Session{Token: "tok", UserID: 7, UserAgent: "agent", ExpiresAt: time.Now().Add(time.Hour)}
	expired := &domain.Session{Token: "old", UserID: 7, UserAgent: "agent", ExpiresAt: time.Now().Add(-time.Minute)}

	var deleted []string
	sessions := &mockSessionRepo{
		getByTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			switch token {
			case "tok":
				return valid, nil
			case "old":
				return expired, nil
			}
			return nil, nil
		},
		deleteFn: func(_ context.Context, token string) error {
			deleted = append(deleted, token)
			return nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(_ context.Context, id int64) (*domain.User, error) {
			if id == 7 {
				return user, nil
			}
			return nil, nil
		},
	}
	svc := app.NewAuthService(users, sessions, time.Hour)
	ctx := context.Background()

	got, err := svc.ValidateSession(ctx, "tok", "agent")
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("user ID = %d, want 7", got.ID)
	}

	if _, err := svc.ValidateSession(ctx, "missing", "agent"); !errors.Is(err, app.ErrSessionNotFound) {
		t.Errorf("missing token: err = %v, want ErrSessionNotFound", err)
	}

	if _, err := svc.ValidateSession(ctx, "old", "agent"); !errors.Is(err, app.ErrSessionExpired) {
		t.Errorf("expired: err = %v, want ErrSessionExpired", err)
	}

	if _, err := svc.ValidateSession(ctx, "tok", "other-agent"); !errors.Is(err, app.ErrSessionExpired) {
		t.Errorf("agent mismatch: err = %v, want ErrSessionExpired", err)
	}

	// Both the expired session and the hijack suspect get revoked.
	if len(deleted) != 2 || deleted[0] != "old" || deleted[1] != "tok" {
		t.Errorf("deleted = %v, want [old tok]", deleted)
	}
}

func TestCreateInitialUser(t *testing.T) {
	t.Run("creates first user", func(t *testing.T) {
		var createdHash string
		users := &mockUserRepo{
			countFn: func(context.Context) (int, error) { return 0, nil },
			createFn: func(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
				createdHash = passwordHash
				return &domain.User{ID: 1, Username: username}, nil
			},
		}
		svc := app.NewAuthService(users, &mockSessionRepo{}, time.Hour)

		if err := svc.CreateInitialUser(context.Background(), "alice", "pw"); err != nil {
			t.Fatalf("CreateInitialUser: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(createdHash), []byte("pw")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}
	})

	t.Run("refuses when users exist", func(t *testing.T) {
		users := &mockUserRepo{
			countFn: func(context.Context) (int, error) { return 1, nil },
			createFn: func(context.Context, string, string, string) (*domain.User, error) {
				t.Error("Create should not be called")
				return nil, nil
			},
		}
		svc := app.NewAuthService(users, &mockSessionRepo{}, time.Hour)

		if err := svc.CreateInitialUser(context.Background(), "bob", "pw"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestLoginWithUser_AutoProvision(t *testing.T) {
	known := map[string]*domain.User{}
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return known[username], nil
		},
		createFn: func(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
			if passwordHash != "" {
				t.Errorf("SSO account created with password hash %q", passwordHash)
			}
			u := &domain.User{ID: int64(len(known) + 1), Username: username, Email: email}
			known[username] = u
			return u, nil
		},
	}
	var sessionUserID int64
	sessions := &mockSessionRepo{
		createFn: func(_ context.Context, userID int64, _, _, _ string, _ time.Time) error {
			sessionUserID = userID
			return nil
		},
	}
	svc := app.NewAuthService(users, sessions, time.Hour)

	token, err := svc.LoginWithUser(context.Background(), "carol", "carol@example.com", "agent", "ip")
	if err != nil {
		t.Fatalf("LoginWithUser: %v", err)
	}
	if token == "" {
		t.Error("expected token")
	}
	if known["carol"] == nil || known["carol"].Email != "carol@example.com" {
		t.Errorf("user not provisioned: %+v", known)
	}
	if sessionUserID != known["carol"].ID {
		t.Errorf("session for user %d, want %d", sessionUserID, known["carol"].ID)
	}

	// Second login reuses the existing account.
	before := len(known)
	if _, err := svc.LoginWithUser(context.Background(), "carol", "carol@example.com", "agent", "ip"); err != nil {
		t.Fatalf("second LoginWithUser: %v", err)
	}
	if len(known) != before {
		t.Errorf("account duplicated: %d users", len(known))
	}
}

func TestValidateForwardAuth(t *testing.T) {
	known := map[string]*domain.User{
		"alice": {ID: 1, Username: "alice"},
	}
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return known[username], nil
		},
		createFn: func(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
			u := &domain.User{ID: int64(len(known) + 1), Username: username}
			known[username] = u
			return u, nil
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{}, time.Hour)
	ctx := context.Background()

	u, err := svc.ValidateForwardAuth(ctx, "alice")
	if err != nil || u.ID != 1 {
		t.Fatalf("existing user: %v, %v", u, err)
	}

	u, err = svc.ValidateForwardAuth(ctx, "dave")
	if err != nil {
		t.Fatalf("auto-provision: %v", err)
	}
	if known["dave"] == nil || u.Username != "dave" {
		t.Errorf("dave not provisioned: %+v", u)
	}

	if _, err := svc.ValidateForwardAuth(ctx, ""); err == nil {
		t.Error("expected error for empty header")
	}
}
