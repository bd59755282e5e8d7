package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
)

// fakeAuthService resolves fixed tokens to fixed accounts.
type fakeAuthService struct {
	accounts map[string]*models.Account
}

var _ services.AuthService = (*fakeAuthService)(nil)

func (f *fakeAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, string, error) {
	return nil, "", errors.New("not implemented")
}

func (f *fakeAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.Account, string, error) {
	return nil, "", errors.New("not implemented")
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error { return nil }

func (f *fakeAuthService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) VerifySession(ctx context.Context, token string) (*models.Account, error) {
	account, ok := f.accounts[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return account, nil
}

func (f *fakeAuthService) UpdateCredentials(ctx context.Context, accountID int64, req *dto.UpdateCredentialsRequest) (*models.Account, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) SessionMaxAgeSeconds() int { return 3600 }

func setupGuardedRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := NewAuthMiddleware(&fakeAuthService{accounts: map[string]*models.Account{
		"tok-admin": {ID: 1, Username: "admin", IsAdmin: true},
		"tok-user":  {ID: 2, Username: "reader", IsAdmin: false},
	}})

	var handlerCalls int
	router := gin.New()
	router.GET("/me", auth.SessionAuth(), func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"username": account.Username})
	})
	router.POST("/admin-only", auth.SessionAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		handlerCalls++
		c.Status(http.StatusNoContent)
	})

	return router, &handlerCalls
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"unknown token", "tok-bogus", http.StatusUnauthorized},
		{"valid token", "tok-user", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := setupGuardedRouter(t)
			rec := doRequest(router, http.MethodGet, "/me", tt.token)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			wantCalls := 0
			if tt.wantStatus == http.StatusOK {
				wantCalls = 1
			}
			if *calls != wantCalls {
				t.Errorf("handler called %d times, want %d", *calls, wantCalls)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"anonymous gets 401", "", http.StatusUnauthorized},
		{"non-admin gets 403", "tok-user", http.StatusForbidden},
		{"admin passes", "tok-admin", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := setupGuardedRouter(t)
			rec := doRequest(router, http.MethodPost, "/admin-only", tt.token)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			// A rejected request must never reach the handler.
			wantCalls := 0
			if tt.wantStatus == http.StatusNoContent {
				wantCalls = 1
			}
			if *calls != wantCalls {
				t.Errorf("handler called %d times, want %d", *calls, wantCalls)
			}
		})
	}
}
