package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/auth"
	"github.com/ozank/lectern/internal/pkg/session"
)

func setupAuthService(t *testing.T) (AuthService, *fakeAccountStore, *session.Manager) {
	t.Helper()

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { store.Close() })

	manager := session.NewManager(session.Config{MaxAge: time.Hour}, store)
	accounts := newFakeAccountStore()
	return NewAuthService(accounts, manager), accounts, manager
}

func seedAccount(t *testing.T, accounts *fakeAccountStore, username, password string, isAdmin bool) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	id, err := accounts.Create(context.Background(), &models.Account{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return id
}

func TestAuthServiceRegister(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	account, token, err := svc.Register(ctx, &dto.RegisterRequest{Username: "jane", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if account.ID == 0 {
		t.Error("Register() did not assign an id")
	}
	if account.IsAdmin {
		t.Error("Register() created an admin account")
	}
	if token == "" {
		t.Fatal("Register() returned empty session token")
	}

	// The returned token must resolve to the new account.
	got, err := svc.VerifySession(ctx, token)
	if err != nil {
		t.Fatalf("VerifySession() error = %v", err)
	}
	if got.Username != "jane" {
		t.Errorf("VerifySession() username = %q, want %q", got.Username, "jane")
	}
}

func TestAuthServiceRegisterDuplicateUsername(t *testing.T) {
	svc, accounts, _ := setupAuthService(t)
	ctx := context.Background()
	seedAccount(t, accounts, "jane", "secret123", false)

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "jane", Password: "other456"})
	if !errors.Is(err, apperrors.ErrUsernameAlreadyTaken) {
		t.Errorf("Register() error = %v, want ErrUsernameAlreadyTaken", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	svc, accounts, _ := setupAuthService(t)
	ctx := context.Background()
	seedAccount(t, accounts, "admin", "admin123", true)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "admin", password: "admin123"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: apperrors.ErrInvalidCredentials},
		{name: "unknown username", username: "ghost", password: "admin123", wantErr: apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, token, err := svc.Login(ctx, &dto.LoginRequest{Username: tt.username, Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if !account.IsAdmin {
				t.Error("Login() account.IsAdmin = false, want true")
			}
			if token == "" {
				t.Error("Login() returned empty session token")
			}
		})
	}
}

func TestAuthServiceLogoutInvalidatesSession(t *testing.T) {
	svc, accounts, _ := setupAuthService(t)
	ctx := context.Background()
	seedAccount(t, accounts, "admin", "admin123", true)

	_, token, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.VerifySession(ctx, token); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("VerifySession() after logout error = %v, want ErrUnauthenticated", err)
	}

	// Logging out twice is fine.
	if err := svc.Logout(ctx, token); err != nil {
		t.Errorf("Logout() second call error = %v", err)
	}
}

func TestAuthServiceUpdateCredentials(t *testing.T) {
	svc, accounts, _ := setupAuthService(t)
	ctx := context.Background()
	id := seedAccount(t, accounts, "admin", "admin123", true)

	_, oldToken, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	account, err := svc.UpdateCredentials(ctx, id, &dto.UpdateCredentialsRequest{
		CurrentPassword: "admin123",
		NewUsername:     "owner",
		NewPassword:     "stronger456",
	})
	if err != nil {
		t.Fatalf("UpdateCredentials() error = %v", err)
	}
	if account.Username != "owner" {
		t.Errorf("UpdateCredentials() username = %q, want %q", account.Username, "owner")
	}

	// Every existing session must be gone.
	if _, err := svc.VerifySession(ctx, oldToken); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("VerifySession() with old token error = %v, want ErrUnauthenticated", err)
	}

	// New credentials authenticate, old ones do not.
	if _, _, err := svc.Login(ctx, &dto.LoginRequest{Username: "owner", Password: "stronger456"}); err != nil {
		t.Errorf("Login() with new credentials error = %v", err)
	}
	if _, _, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin123"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() with old credentials error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceUpdateCredentialsFailures(t *testing.T) {
	svc, accounts, _ := setupAuthService(t)
	ctx := context.Background()
	id := seedAccount(t, accounts, "admin", "admin123", true)
	seedAccount(t, accounts, "taken", "pass456", false)

	tests := []struct {
		name    string
		req     *dto.UpdateCredentialsRequest
		wantErr error
	}{
		{
			name:    "wrong current password",
			req:     &dto.UpdateCredentialsRequest{CurrentPassword: "wrong", NewPassword: "stronger456"},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:    "nothing to update",
			req:     &dto.UpdateCredentialsRequest{CurrentPassword: "admin123"},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "username already taken",
			req:     &dto.UpdateCredentialsRequest{CurrentPassword: "admin123", NewUsername: "taken"},
			wantErr: apperrors.ErrUsernameAlreadyTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateCredentials(ctx, id, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateCredentials() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Failed rotations must leave the stored credentials usable.
	if _, _, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin123"}); err != nil {
		t.Errorf("Login() after failed rotations error = %v", err)
	}
}
