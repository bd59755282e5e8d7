package services

import (
	"context"
	"mime/multipart"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

// profileStore is the slice of the profile repository the service needs.
type profileStore interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdatePhotoURL(ctx context.Context, photoURL string) (*string, error)
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.Profile, error)
	UpdatePhoto(ctx context.Context, fileHeader *multipart.FileHeader) (*models.Profile, error)
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	profileRepo profileStore
	uploads     uploader
	media       objectRemover
	photoLimits upload.Limits
}

// NewProfileService creates a new profile service instance
func NewProfileService(profileRepo profileStore, uploads uploader, media objectRemover, photoLimits upload.Limits) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		uploads:     uploads,
		media:       media,
		photoLimits: photoLimits,
	}
}

// GetProfile returns the site owner's profile, creating the default row on
// first access.
func (s *profileServiceImpl) GetProfile(ctx context.Context) (*models.Profile, error) {
	return s.profileRepo.Get(ctx)
}

// UpdateProfile writes the submitted profile fields.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile := &models.Profile{
		DisplayName: req.DisplayName,
		Title:       req.Title,
		Biography:   req.Biography,
		Contact: models.Contact{
			Email:  req.Contact.Email,
			Phone:  req.Contact.Phone,
			Office: req.Contact.Office,
		},
	}
	return s.profileRepo.Update(ctx, profile)
}

// UpdatePhoto uploads a new profile photo and replaces the stored reference.
// The previous photo is removed from the media host on a best-effort basis.
func (s *profileServiceImpl) UpdatePhoto(ctx context.Context, fileHeader *multipart.FileHeader) (*models.Profile, error) {
	result, err := s.uploads.Store(ctx, fileHeader, mediastore.FolderProfile, s.photoLimits)
	if err != nil {
		return nil, err
	}

	oldURL, err := s.profileRepo.UpdatePhotoURL(ctx, result.URL)
	if err != nil {
		// The row update failed, so the fresh object is orphaned. Remove it.
		if delErr := s.media.Delete(ctx, result.URL); delErr != nil {
			logger.Warn().Err(delErr).Str("url", result.URL).Msg("Failed to remove orphaned photo")
		}
		return nil, err
	}

	if oldURL != nil && *oldURL != "" {
		if err := s.media.Delete(ctx, *oldURL); err != nil {
			logger.Warn().Err(err).Str("url", *oldURL).Msg("Failed to remove previous photo")
		}
	}

	return s.profileRepo.Get(ctx)
}
