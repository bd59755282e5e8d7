package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/auth"
	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/pkg/session"
)

// accountStore is the slice of the account repository the auth service needs.
type accountStore interface {
	Create(ctx context.Context, account *models.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	UpdateCredentials(ctx context.Context, id int64, username, passwordHash string) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.Account, string, error)
	Logout(ctx context.Context, token string) error
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	VerifySession(ctx context.Context, token string) (*models.Account, error)
	UpdateCredentials(ctx context.Context, accountID int64, req *dto.UpdateCredentialsRequest) (*models.Account, error)
	SessionMaxAgeSeconds() int
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	accountRepo accountStore
	sessions    *session.Manager
}

// NewAuthService creates a new auth service instance
func NewAuthService(accountRepo accountStore, sessions *session.Manager) AuthService {
	return &authServiceImpl{
		accountRepo: accountRepo,
		sessions:    sessions,
	}
}

// Register creates a new account and opens a session for it. Registered
// accounts are never administrators; the admin account comes from the seed.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, "", fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if _, err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, "", apperrors.ErrUsernameAlreadyTaken
		}
		return nil, "", err
	}

	sess, err := s.sessions.Create(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error creating session: %w", err)
	}

	logger.Info().Str("username", account.Username).Int64("accountID", account.ID).Msg("Account registered")
	return account, sess.Token, nil
}

// Login verifies the credentials and opens a new session.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.Account, string, error) {
	account, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Same error as a wrong password so usernames cannot be probed.
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error creating session: %w", err)
	}

	logger.Info().Str("username", account.Username).Msg("Account logged in")
	return account, sess.Token, nil
}

// Logout destroys the session behind the given token. Unknown tokens are
// ignored; the client ends up logged out either way.
func (s *authServiceImpl) Logout(_ context.Context, token string) error {
	return s.sessions.Destroy(token)
}

// GetAccount retrieves an account by id.
func (s *authServiceImpl) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// VerifySession resolves a session token to its account.
func (s *authServiceImpl) VerifySession(ctx context.Context, token string) (*models.Account, error) {
	sess, err := s.sessions.Verify(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	account, err := s.accountRepo.GetByID(ctx, sess.AccountID)
	if err != nil {
		// The account behind the session is gone; drop the session too.
		_ = s.sessions.Destroy(token)
		return nil, apperrors.ErrUnauthenticated
	}
	return account, nil
}

// UpdateCredentials rotates the username and/or password after verifying the
// current password. Every session for the account is destroyed on success;
// the client authenticates again with the new credentials.
func (s *authServiceImpl) UpdateCredentials(ctx context.Context, accountID int64, req *dto.UpdateCredentialsRequest) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, req.CurrentPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}

	newUsername := account.Username
	if strings.TrimSpace(req.NewUsername) != "" {
		newUsername = strings.TrimSpace(req.NewUsername)
	}

	newHash := account.PasswordHash
	if req.NewPassword != "" {
		newHash, err = auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	if newUsername == account.Username && newHash == account.PasswordHash {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidationFailed)
	}

	if err := s.accountRepo.UpdateCredentials(ctx, accountID, newUsername, newHash); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, apperrors.ErrUsernameAlreadyTaken
		}
		return nil, err
	}
	account.Username = newUsername
	account.PasswordHash = newHash

	// Sessions on other devices were opened with the old credentials.
	if err := s.sessions.DestroyAccountSessions(accountID); err != nil {
		logger.Warn().Err(err).Int64("accountID", accountID).Msg("Failed to destroy old sessions")
	}

	logger.Info().Int64("accountID", accountID).Msg("Credentials updated")
	return account, nil
}

// SessionMaxAgeSeconds exposes the configured session lifetime for cookies.
func (s *authServiceImpl) SessionMaxAgeSeconds() int {
	return int(s.sessions.MaxAge().Seconds())
}
