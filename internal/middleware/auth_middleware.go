package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
)

// SessionCookie is the name of the session cookie issued at login.
const SessionCookie = "lectern_session"

// accountKey is the gin context key holding the authenticated account.
const accountKey = "authAccount"

// AuthMiddleware guards routes behind the session cookie.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// SessionAuth resolves the session cookie to an account and stores it in the
// request context. Requests without a valid session are rejected with 401.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		account, err := m.authService.VerifySession(c.Request.Context(), token)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeSessionExpired, "Session is invalid or has expired")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// RequireAdmin rejects non-admin accounts with 403. Must run after
// SessionAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		if !account.IsAdmin {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Administrator access required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account placed in the context by SessionAuth.
func CurrentAccount(c *gin.Context) (*models.Account, bool) {
	value, exists := c.Get(accountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*models.Account)
	return account, ok
}
