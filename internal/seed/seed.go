package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/ozank/lectern/internal/app/models"
	appRepos "github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/auth"
)

// Credentials of the account created on first boot. The owner is expected to
// rotate them through PUT /api/admin/credentials right after deploying.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// CreateDefaultData creates the administrator account and the default profile
// row when the database is empty. Errors are collected and reported but do
// not abort the boot sequence.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	accountRepo := appRepos.NewAccountRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	count, err := accountRepo.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting accounts")
		finalErr = errors.Join(finalErr, err)
	} else if count == 0 {
		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.Account{
				Username:     defaultAdminUsername,
				PasswordHash: hashedPassword,
				IsAdmin:      true,
			}
			adminID, err := accountRepo.Create(ctx, admin)
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", adminID).Msg("Default admin account created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Accounts already exist, skipping admin creation")
	}

	// Get lazily inserts the default profile row when the table is empty.
	if _, err := profileRepo.Get(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error ensuring default profile row")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
