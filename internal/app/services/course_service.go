package services

import (
	"context"
	"errors"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/apperrors"
)

// courseStore is the slice of the course repository the service needs.
type courseStore interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// CourseService defines the interface for course operations
type CourseService interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo courseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo courseStore) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// GetAllCourses returns every course, newest first.
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseByID returns one course.
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// CreateCourse inserts a new course.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		Semester:    req.Semester,
		Session:     req.Session,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse replaces the mutable fields of a course.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		ID:          id,
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		Semester:    req.Semester,
		Session:     req.Session,
	}
	updated, err := s.courseRepo.Update(ctx, course)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteCourse removes a course. Materials attached to it stay in place.
// Deleting an already-deleted course succeeds.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
