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

// talkStore is the slice of the talk repository the service needs.
type talkStore interface {
	GetAll(ctx context.Context) ([]*models.Talk, error)
	GetByID(ctx context.Context, id int64) (*models.Talk, error)
	Create(ctx context.Context, talk *models.Talk) error
	Update(ctx context.Context, talk *models.Talk) (*models.Talk, error)
	UpdateFlyerURL(ctx context.Context, id int64, flyerURL string) (*string, error)
	Delete(ctx context.Context, id int64) error
}

// TalkService defines the interface for talk/event operations
type TalkService interface {
	GetAllTalks(ctx context.Context) ([]*models.Talk, error)
	GetTalkByID(ctx context.Context, id int64) (*models.Talk, error)
	CreateTalk(ctx context.Context, req *dto.CreateTalkRequest, flyerHeader *multipart.FileHeader) (*models.Talk, error)
	UpdateTalk(ctx context.Context, id int64, req *dto.UpdateTalkRequest) (*models.Talk, error)
	UploadFlyer(ctx context.Context, id int64, flyerHeader *multipart.FileHeader) (*models.Talk, error)
	DeleteTalk(ctx context.Context, id int64) error
}

// talkServiceImpl implements the TalkService interface
type talkServiceImpl struct {
	talkRepo    talkStore
	uploads     uploader
	media       objectRemover
	flyerLimits upload.Limits
	now         func() time.Time
}

// NewTalkService creates a new talk service instance
func NewTalkService(talkRepo talkStore, uploads uploader, media objectRemover, flyerLimits upload.Limits) TalkService {
	return &talkServiceImpl{
		talkRepo:    talkRepo,
		uploads:     uploads,
		media:       media,
		flyerLimits: flyerLimits,
		now:         time.Now,
	}
}

// GetAllTalks returns every talk in chronological order.
func (s *talkServiceImpl) GetAllTalks(ctx context.Context) ([]*models.Talk, error) {
	return s.talkRepo.GetAll(ctx)
}

// GetTalkByID returns one talk.
func (s *talkServiceImpl) GetTalkByID(ctx context.Context, id int64) (*models.Talk, error) {
	talk, err := s.talkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrTalkNotFound
		}
		return nil, err
	}
	return talk, nil
}

// CreateTalk inserts a talk with a status derived from its date. When a
// flyer part is present it is uploaded first; a rejected image leaves no row.
func (s *talkServiceImpl) CreateTalk(ctx context.Context, req *dto.CreateTalkRequest, flyerHeader *multipart.FileHeader) (*models.Talk, error) {
	talk := &models.Talk{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Time:             req.Time,
		Venue:            req.Venue,
		RegistrationLink: req.RegistrationLink,
		Status:           models.ComputeTalkStatus(req.Date, s.now()),
	}

	var flyerURL string
	if flyerHeader != nil {
		result, err := s.uploads.Store(ctx, flyerHeader, mediastore.FolderFlyers, s.flyerLimits)
		if err != nil {
			return nil, err
		}
		flyerURL = result.URL
		talk.FlyerURL = &flyerURL
	}

	if err := s.talkRepo.Create(ctx, talk); err != nil {
		if flyerURL != "" {
			if delErr := s.media.Delete(ctx, flyerURL); delErr != nil {
				logger.Warn().Err(delErr).Str("url", flyerURL).Msg("Failed to remove orphaned flyer")
			}
		}
		return nil, err
	}
	return talk, nil
}

// UpdateTalk replaces the mutable fields. An empty status is recomputed
// from the date; an explicit one (such as cancelled) is kept as given.
func (s *talkServiceImpl) UpdateTalk(ctx context.Context, id int64, req *dto.UpdateTalkRequest) (*models.Talk, error) {
	status := models.TalkStatus(req.Status)
	if status == "" {
		status = models.ComputeTalkStatus(req.Date, s.now())
	}

	talk := &models.Talk{
		ID:               id,
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Time:             req.Time,
		Venue:            req.Venue,
		RegistrationLink: req.RegistrationLink,
		Status:           status,
	}
	updated, err := s.talkRepo.Update(ctx, talk)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrTalkNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UploadFlyer attaches or replaces the talk's flyer image.
func (s *talkServiceImpl) UploadFlyer(ctx context.Context, id int64, flyerHeader *multipart.FileHeader) (*models.Talk, error) {
	result, err := s.uploads.Store(ctx, flyerHeader, mediastore.FolderFlyers, s.flyerLimits)
	if err != nil {
		return nil, err
	}

	oldURL, err := s.talkRepo.UpdateFlyerURL(ctx, id, result.URL)
	if err != nil {
		if delErr := s.media.Delete(ctx, result.URL); delErr != nil {
			logger.Warn().Err(delErr).Str("url", result.URL).Msg("Failed to remove orphaned flyer")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrTalkNotFound
		}
		return nil, err
	}

	if oldURL != nil && *oldURL != "" {
		if err := s.media.Delete(ctx, *oldURL); err != nil {
			logger.Warn().Err(err).Str("url", *oldURL).Msg("Failed to remove previous flyer")
		}
	}
	return s.GetTalkByID(ctx, id)
}

// DeleteTalk removes the row and its flyer. Deleting a missing talk succeeds.
func (s *talkServiceImpl) DeleteTalk(ctx context.Context, id int64) error {
	talk, err := s.talkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.talkRepo.Delete(ctx, id); err != nil {
		return err
	}

	if talk.FlyerURL != nil && *talk.FlyerURL != "" {
		if err := s.media.Delete(ctx, *talk.FlyerURL); err != nil {
			logger.Warn().Err(err).Str("url", *talk.FlyerURL).Msg("Failed to remove flyer from media host")
		}
	}
	return nil
}
