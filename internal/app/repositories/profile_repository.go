package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/pkg/logger"
)

const profileColumns = "id, display_name, title, biography, photo_url, contact_email, contact_phone, contact_office, updated_at"

// ProfileRepository handles profile database operations. The profiles table
// is a singleton: reads return the first row, creating a default one when
// the table is empty, and updates always target that row.
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the profile row, inserting a default one first if none exists.
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	profile, err := r.first(ctx)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Empty table; create the default row so the public page always has
	// something to render.
	defaultProfile := &models.Profile{
		DisplayName: "Your Name",
		Title:       "Your Title",
		Biography:   "",
		Contact:     models.Contact{Email: "email@example.com"},
	}
	if err := r.insert(ctx, defaultProfile); err != nil {
		return nil, err
	}
	return defaultProfile, nil
}

// Update writes the given fields to the profile row, inserting the row if
// the table is empty.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	existing, err := r.first(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if err := r.insert(ctx, profile); err != nil {
				return nil, err
			}
			return profile, nil
		}
		return nil, err
	}

	sql, args, err := r.sb.Update("profiles").
		SetMap(map[string]interface{}{
			"display_name":   profile.DisplayName,
			"title":          profile.Title,
			"biography":      profile.Biography,
			"contact_email":  profile.Contact.Email,
			"contact_phone":  profile.Contact.Phone,
			"contact_office": profile.Contact.Office,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": existing.ID}).
		Suffix("RETURNING " + profileColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update profile query: %w", err)
	}

	updated := &models.Profile{}
	if err := r.scanProfile(r.db.QueryRow(ctx, sql, args...), updated); err != nil {
		logger.Error().Err(err).Msg("Error executing update profile query")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return updated, nil
}

// UpdatePhotoURL replaces the photo reference on the profile row, returning
// the previous URL so the caller can clean up the old object.
func (r *ProfileRepository) UpdatePhotoURL(ctx context.Context, photoURL string) (oldURL *string, err error) {
	existing, err := r.first(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			profile := &models.Profile{
				DisplayName: "Your Name",
				Title:       "Your Title",
				Contact:     models.Contact{Email: "email@example.com"},
				PhotoURL:    &photoURL,
			}
			if err := r.insert(ctx, profile); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, err
	}

	sql, args, err := r.sb.Update("profiles").
		SetMap(map[string]interface{}{
			"photo_url":  photoURL,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": existing.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update photo query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing update photo query")
		return nil, fmt.Errorf("error updating profile photo: %w", err)
	}
	return existing.PhotoURL, nil
}

func (r *ProfileRepository) first(ctx context.Context) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("profiles").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile := &models.Profile{}
	err = r.scanProfile(r.db.QueryRow(ctx, sql, args...), profile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) insert(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("display_name", "title", "biography", "photo_url", "contact_email", "contact_phone", "contact_office").
		Values(profile.DisplayName, profile.Title, profile.Biography, profile.PhotoURL,
			profile.Contact.Email, profile.Contact.Phone, profile.Contact.Office).
		Suffix("RETURNING id, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&profile.ID, &profile.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing insert profile query")
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) scanProfile(row pgx.Row, profile *models.Profile) error {
	return row.Scan(
		&profile.ID, &profile.DisplayName, &profile.Title, &profile.Biography,
		&profile.PhotoURL, &profile.Contact.Email, &profile.Contact.Phone,
		&profile.Contact.Office, &profile.UpdatedAt,
	)
}
