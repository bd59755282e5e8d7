package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/pkg/logger"
)

const talkColumns = "id, title, description, talk_date, talk_time, venue, registration_link, flyer_url, status, created_at, updated_at"

// talkDateLayout is the ISO date format used by the model. The talk_date
// column is a SQL DATE, so values cross the wire as time.Time and are
// converted at this boundary.
const talkDateLayout = "2006-01-02"

func parseTalkDate(date string) (time.Time, error) {
	d, err := time.Parse(talkDateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid talk date %q: %w", date, err)
	}
	return d, nil
}

// TalkRepository handles talk database operations
type TalkRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTalkRepository creates a new TalkRepository
func NewTalkRepository(db *pgxpool.Pool) *TalkRepository {
	return &TalkRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns every talk in chronological order.
func (r *TalkRepository) GetAll(ctx context.Context) ([]*models.Talk, error) {
	sql, args, err := r.sb.Select(talkColumns).
		From("talks").
		OrderBy("talk_date ASC", "talk_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list talks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list talks query")
		return nil, fmt.Errorf("error listing talks: %w", err)
	}
	defer rows.Close()

	talks := make([]*models.Talk, 0)
	for rows.Next() {
		talk := &models.Talk{}
		if err := r.scanTalk(rows, talk); err != nil {
			return nil, fmt.Errorf("error scanning talk row: %w", err)
		}
		talks = append(talks, talk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating talk rows: %w", err)
	}
	return talks, nil
}

// GetByID retrieves a talk by id.
func (r *TalkRepository) GetByID(ctx context.Context, id int64) (*models.Talk, error) {
	sql, args, err := r.sb.Select(talkColumns).
		From("talks").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get talk query: %w", err)
	}

	talk := &models.Talk{}
	err = r.scanTalk(r.db.QueryRow(ctx, sql, args...), talk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("talkID", id).Msg("Error scanning talk row")
		return nil, fmt.Errorf("error getting talk by id: %w", err)
	}
	return talk, nil
}

// Create inserts a new talk.
func (r *TalkRepository) Create(ctx context.Context, talk *models.Talk) error {
	talkDate, err := parseTalkDate(talk.Date)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("talks").
		Columns("title", "description", "talk_date", "talk_time", "venue",
			"registration_link", "flyer_url", "status").
		Values(talk.Title, talk.Description, talkDate, talk.Time, talk.Venue,
			talk.RegistrationLink, talk.FlyerURL, talk.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create talk query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&talk.ID, &talk.CreatedAt, &talk.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", talk.Title).Msg("Error executing create talk query")
		return fmt.Errorf("error creating talk: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a talk. The flyer reference has
// its own endpoint and is untouched here.
func (r *TalkRepository) Update(ctx context.Context, talk *models.Talk) (*models.Talk, error) {
	talkDate, err := parseTalkDate(talk.Date)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Update("talks").
		SetMap(map[string]interface{}{
			"title":             talk.Title,
			"description":       talk.Description,
			"talk_date":         talkDate,
			"talk_time":         talk.Time,
			"venue":             talk.Venue,
			"registration_link": talk.RegistrationLink,
			"status":            talk.Status,
			"updated_at":        squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": talk.ID}).
		Suffix("RETURNING " + talkColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update talk query: %w", err)
	}

	updated := &models.Talk{}
	err = r.scanTalk(r.db.QueryRow(ctx, sql, args...), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("talkID", talk.ID).Msg("Error executing update talk query")
		return nil, fmt.Errorf("error updating talk: %w", err)
	}
	return updated, nil
}

// UpdateFlyerURL replaces the stored flyer reference, returning the
// previous URL so the caller can remove the old object.
func (r *TalkRepository) UpdateFlyerURL(ctx context.Context, id int64, flyerURL string) (oldURL *string, err error) {
	var old *string
	err = r.db.QueryRow(ctx, `SELECT flyer_url FROM talks WHERE id = $1`, id).Scan(&old)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting talk flyer url: %w", err)
	}

	sql, args, err := r.sb.Update("talks").
		SetMap(map[string]interface{}{
			"flyer_url":  flyerURL,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update flyer query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("talkID", id).Msg("Error executing update flyer query")
		return nil, fmt.Errorf("error updating talk flyer: %w", err)
	}
	return old, nil
}

// Delete removes a talk. Deleting a missing row succeeds.
func (r *TalkRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("talks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete talk query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("talkID", id).Msg("Error executing delete talk query")
		return fmt.Errorf("error deleting talk: %w", err)
	}
	return nil
}

func (r *TalkRepository) scanTalk(row pgx.Row, talk *models.Talk) error {
	var talkDate time.Time
	err := row.Scan(
		&talk.ID, &talk.Title, &talk.Description, &talkDate, &talk.Time,
		&talk.Venue, &talk.RegistrationLink, &talk.FlyerURL, &talk.Status,
		&talk.CreatedAt, &talk.UpdatedAt,
	)
	if err != nil {
		return err
	}
	talk.Date = talkDate.Format(talkDateLayout)
	return nil
}
