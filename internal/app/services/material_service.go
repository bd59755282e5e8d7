package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

// materialStore is the slice of the material repository the service needs.
type materialStore interface {
	Create(ctx context.Context, material *models.CourseMaterial) error
	GetByID(ctx context.Context, id int64) (*models.CourseMaterial, error)
	GetByCourse(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error)
	Delete(ctx context.Context, id int64) error
}

// MaterialService defines the interface for course material operations
type MaterialService interface {
	GetCourseMaterials(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error)
	GetMaterialByID(ctx context.Context, id int64) (*models.CourseMaterial, error)
	CreateMaterial(ctx context.Context, courseID int64, req *dto.CreateMaterialRequest, fileHeader *multipart.FileHeader) (*models.CourseMaterial, error)
	DownloadMaterial(ctx context.Context, id int64) (*FileDownload, error)
	DeleteMaterial(ctx context.Context, id int64) error
}

// materialServiceImpl implements the MaterialService interface
type materialServiceImpl struct {
	materialRepo materialStore
	courseRepo   courseStore
	uploads      uploader
	media        mediaFetcher
	fileLimits   upload.Limits
}

// NewMaterialService creates a new material service instance
func NewMaterialService(materialRepo materialStore, courseRepo courseStore, uploads uploader, media mediaFetcher, fileLimits upload.Limits) MaterialService {
	return &materialServiceImpl{
		materialRepo: materialRepo,
		courseRepo:   courseRepo,
		uploads:      uploads,
		media:        media,
		fileLimits:   fileLimits,
	}
}

// GetCourseMaterials returns the materials of a course, newest first. The
// course must exist.
func (s *materialServiceImpl) GetCourseMaterials(ctx context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return s.materialRepo.GetByCourse(ctx, courseID)
}

// GetMaterialByID returns one material.
func (s *materialServiceImpl) GetMaterialByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, err
	}
	return material, nil
}

// CreateMaterial validates the target course, stores the file on the media
// host and records the material row. Nothing is written if the upload is
// rejected.
func (s *materialServiceImpl) CreateMaterial(ctx context.Context, courseID int64, req *dto.CreateMaterialRequest, fileHeader *multipart.FileHeader) (*models.CourseMaterial, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}

	var dueAt *time.Time
	if models.MaterialType(req.Type) == models.MaterialAssignment && req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dueDate must be formatted as YYYY-MM-DD")
		}
		dueAt = &parsed
	}

	result, err := s.uploads.Store(ctx, fileHeader, mediastore.FolderMaterials, s.fileLimits)
	if err != nil {
		return nil, err
	}

	material := &models.CourseMaterial{
		CourseID: courseID,
		Title:    req.Title,
		Type:     models.MaterialType(req.Type),
		FileURL:  result.URL,
		DueAt:    dueAt,
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		if delErr := s.media.Delete(ctx, result.URL); delErr != nil {
			logger.Warn().Err(delErr).Str("url", result.URL).Msg("Failed to remove orphaned material file")
		}
		return nil, err
	}
	return material, nil
}

// DownloadMaterial streams the stored file back from the media host so the
// bucket never has to be exposed directly.
func (s *materialServiceImpl) DownloadMaterial(ctx context.Context, id int64) (*FileDownload, error) {
	material, err := s.GetMaterialByID(ctx, id)
	if err != nil {
		return nil, err
	}

	object, err := s.media.Fetch(ctx, material.FileURL)
	if err != nil {
		logger.Error().Err(err).Int64("materialID", id).Msg("Failed to fetch material from media host")
		return nil, apperrors.ErrMediaHostFailure
	}

	return &FileDownload{Object: object, Filename: downloadFilename(material.Title, material.FileURL)}, nil
}

// DeleteMaterial removes the row and then the remote file. A failed remote
// delete only logs; the row is already gone and the object is unreachable.
func (s *materialServiceImpl) DeleteMaterial(ctx context.Context, id int64) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Already deleted; same outcome.
			return nil
		}
		return err
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.media.Delete(ctx, material.FileURL); err != nil {
		logger.Warn().Err(err).Str("url", material.FileURL).Msg("Failed to remove material file from media host")
	}
	return nil
}

// downloadFilename derives a response filename from the record title and
// the extension of the stored object.
func downloadFilename(title, fileURL string) string {
	name := title
	if idx := lastDot(fileURL); idx >= 0 {
		name += fileURL[idx:]
	}
	return name
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '.':
			return i
		case '/':
			return -1
		}
	}
	return -1
}
