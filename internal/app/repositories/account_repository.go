package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/pkg/dberrors"
	"github.com/ozank/lectern/internal/pkg/logger"
)

// Account error types
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = ErrNotFound
	// ErrUsernameTaken is returned when the username is already in use.
	ErrUsernameTaken = errors.New("account with this username already exists")
)

// AccountRepository handles account database operations
type AccountRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account and returns its generated id.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (int64, error) {
	sql, args, err := r.sb.Insert("accounts").
		Columns("username", "password_hash", "is_admin").
		Values(account.Username, account.PasswordHash, account.IsAdmin).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create account query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, ErrUsernameTaken
		}
		logger.Error().Err(err).Str("username", account.Username).Msg("Error executing create account query")
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	return account.ID, nil
}

// GetByID retrieves an account by id.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	sql, args, err := r.sb.Select("id", "username", "password_hash", "is_admin", "created_at", "updated_at").
		From("accounts").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	account := &models.Account{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.IsAdmin, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		logger.Error().Err(err).Int64("accountID", id).Msg("Error scanning account row")
		return nil, fmt.Errorf("error getting account by id: %w", err)
	}

	return account, nil
}

// GetByUsername retrieves an account by its unique username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	sql, args, err := r.sb.Select("id", "username", "password_hash", "is_admin", "created_at", "updated_at").
		From("accounts").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get account by username query: %w", err)
	}

	account := &models.Account{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.IsAdmin, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning account row")
		return nil, fmt.Errorf("error getting account by username: %w", err)
	}

	return account, nil
}

// UpdateCredentials replaces the username and password hash for an account.
func (r *AccountRepository) UpdateCredentials(ctx context.Context, id int64, username, passwordHash string) error {
	sql, args, err := r.sb.Update("accounts").
		SetMap(map[string]interface{}{
			"username":      username,
			"password_hash": passwordHash,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update credentials query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrUsernameTaken
		}
		logger.Error().Err(err).Int64("accountID", id).Msg("Error executing update credentials query")
		return fmt.Errorf("error updating credentials: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// Count returns the total number of accounts. Used by the seed to decide
// whether the default admin needs to be created.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting accounts: %w", err)
	}
	return count, nil
}
