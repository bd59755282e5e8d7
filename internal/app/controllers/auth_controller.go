package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
	"github.com/ozank/lectern/internal/middleware"
	"github.com/ozank/lectern/internal/pkg/validation"
)

// AuthController handles registration, login and credential management
type AuthController struct {
	authService   services.AuthService
	secureCookies bool
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, secureCookies bool) *AuthController {
	return &AuthController{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, token, c.authService.SessionMaxAgeSeconds(), "/", "", c.secureCookies, true)
}

func (c *AuthController) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.secureCookies, true)
}

func toAccountResponse(account *models.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:       account.ID,
		Username: account.Username,
		IsAdmin:  account.IsAdmin,
	}
}

// Register handles account creation
// @Summary Register a new account
// @Description Creates an account and starts a session for it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account credentials"
// @Success 201 {object} dto.APIResponse{data=dto.AccountResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	account, token, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: toAccountResponse(account)})
}

// Login handles session establishment
// @Summary Log in
// @Description Verifies the credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Logged in"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	account, token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toAccountResponse(account)})
}

// Logout destroys the current session
// @Summary Log out
// @Description Destroys the session and clears the cookie. Safe to repeat.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse "Logged out"
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := c.authService.Logout(ctx.Request.Context(), token); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	c.clearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// GetCurrentUser returns the session's account
// @Summary Current account
// @Description Returns the account behind the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Current account"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /user [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	account, ok := middleware.CurrentAccount(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toAccountResponse(account)})
}

// UpdateCredentials rotates the admin username and/or password
// @Summary Update credentials
// @Description Verifies the current password, applies the change and destroys every session of the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UpdateCredentialsRequest true "Credential change"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Credentials updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/credentials [put]
func (c *AuthController) UpdateCredentials(ctx *gin.Context) {
	account, ok := middleware.CurrentAccount(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid credential data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	updated, err := c.authService.UpdateCredentials(ctx.Request.Context(), account.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// All sessions are gone, including this one.
	c.clearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: toAccountResponse(updated)})
}
