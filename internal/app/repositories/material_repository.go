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

const materialColumns = "id, course_id, title, material_type, file_url, uploaded_at, due_at"

// MaterialRepository handles course material database operations
type MaterialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new material row.
func (r *MaterialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	sql, args, err := r.sb.Insert("course_materials").
		Columns("course_id", "title", "material_type", "file_url", "due_at").
		Values(material.CourseID, material.Title, material.Type, material.FileURL, material.DueAt).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create material query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&material.ID, &material.UploadedAt)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", material.CourseID).Msg("Error executing create material query")
		return fmt.Errorf("error creating material: %w", err)
	}
	return nil
}

// GetByID retrieves a material by id.
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	sql, args, err := r.sb.Select(materialColumns).
		From("course_materials").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get material query: %w", err)
	}

	material := &models.CourseMaterial{}
	err = r.scanMaterial(r.db.QueryRow(ctx, sql, args...), material)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("materialID", id).Msg("Error scanning material row")
		return nil, fmt.Errorf("error getting material by id: %w", err)
	}
	return material, nil
}

// GetByCourse returns the materials attached to a course, newest first.
func (r *MaterialRepository) GetByCourse(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	sql, args, err := r.sb.Select(materialColumns).
		From("course_materials").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("uploaded_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list materials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list materials query")
		return nil, fmt.Errorf("error listing materials: %w", err)
	}
	defer rows.Close()

	materials := make([]*models.CourseMaterial, 0)
	for rows.Next() {
		material := &models.CourseMaterial{}
		if err := r.scanMaterial(rows, material); err != nil {
			return nil, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, material)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}
	return materials, nil
}

// Delete removes a material. Deleting a missing row succeeds.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("course_materials").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete material query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("materialID", id).Msg("Error executing delete material query")
		return fmt.Errorf("error deleting material: %w", err)
	}
	return nil
}

func (r *MaterialRepository) scanMaterial(row pgx.Row, material *models.CourseMaterial) error {
	return row.Scan(
		&material.ID, &material.CourseID, &material.Title, &material.Type,
		&material.FileURL, &material.UploadedAt, &material.DueAt,
	)
}
