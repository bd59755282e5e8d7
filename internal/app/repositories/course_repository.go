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

const courseColumns = "id, title, code, description, semester, session_label, created_at, updated_at"

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns every course, newest first.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course := &models.Course{}
		if err := r.scanCourse(rows, course); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by id.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.scanCourse(r.db.QueryRow(ctx, sql, args...), course)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by id: %w", err)
	}
	return course, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "code", "description", "semester", "session_label").
		Values(course.Title, course.Code, course.Description, course.Semester, course.Session).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("code", course.Code).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":         course.Title,
			"code":          course.Code,
			"description":   course.Description,
			"semester":      course.Semester,
			"session_label": course.Session,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING " + courseColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	updated := &models.Course{}
	err = r.scanCourse(r.db.QueryRow(ctx, sql, args...), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return updated, nil
}

// Delete removes a course. Missing rows are not an error; the outcome is
// the same either way. Materials referencing the course are left in place.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}

func (r *CourseRepository) scanCourse(row pgx.Row, course *models.Course) error {
	return row.Scan(
		&course.ID, &course.Title, &course.Code, &course.Description,
		&course.Semester, &course.Session, &course.CreatedAt, &course.UpdatedAt,
	)
}
