package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

// publicationStore is the slice of the publication repository the service needs.
type publicationStore interface {
	GetAll(ctx context.Context) ([]*models.Publication, error)
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	Create(ctx context.Context, pub *models.Publication) error
	Update(ctx context.Context, pub *models.Publication) (*models.Publication, error)
	UpdatePdfURL(ctx context.Context, id int64, pdfURL string) (*string, error)
	Delete(ctx context.Context, id int64) error
}

// PublicationService defines the interface for publication operations
type PublicationService interface {
	GetAllPublications(ctx context.Context) ([]*models.Publication, error)
	GetPublicationByID(ctx context.Context, id int64) (*models.Publication, error)
	CreatePublication(ctx context.Context, req *dto.CreatePublicationRequest, pdfHeader *multipart.FileHeader) (*models.Publication, error)
	UpdatePublication(ctx context.Context, id int64, req *dto.UpdatePublicationRequest) (*models.Publication, error)
	UploadPdf(ctx context.Context, id int64, pdfHeader *multipart.FileHeader) (*models.Publication, error)
	DownloadPdf(ctx context.Context, id int64) (*FileDownload, error)
	DeletePublication(ctx context.Context, id int64) error
}

// publicationServiceImpl implements the PublicationService interface
type publicationServiceImpl struct {
	publicationRepo publicationStore
	uploads         uploader
	media           mediaFetcher
	pdfLimits       upload.Limits
}

// NewPublicationService creates a new publication service instance
func NewPublicationService(publicationRepo publicationStore, uploads uploader, media mediaFetcher, pdfLimits upload.Limits) PublicationService {
	return &publicationServiceImpl{
		publicationRepo: publicationRepo,
		uploads:         uploads,
		media:           media,
		pdfLimits:       pdfLimits,
	}
}

// GetAllPublications returns every publication ordered by year, newest first.
func (s *publicationServiceImpl) GetAllPublications(ctx context.Context) ([]*models.Publication, error) {
	return s.publicationRepo.GetAll(ctx)
}

// GetPublicationByID returns one publication with its author list.
func (s *publicationServiceImpl) GetPublicationByID(ctx context.Context, id int64) (*models.Publication, error) {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}
	return pub, nil
}

// CreatePublication inserts a publication; when a PDF part is present it is
// uploaded first so a rejected file never leaves a half-created row.
func (s *publicationServiceImpl) CreatePublication(ctx context.Context, req *dto.CreatePublicationRequest, pdfHeader *multipart.FileHeader) (*models.Publication, error) {
	pub := publicationFromRequest(req.Title, req.Abstract, req.Authors, req.Type, req.Year,
		req.Journal, req.Volume, req.Issue, req.Pages, req.DOI, req.URL, req.Status)

	var pdfURL string
	if pdfHeader != nil {
		result, err := s.uploads.Store(ctx, pdfHeader, mediastore.FolderPublications, s.pdfLimits)
		if err != nil {
			return nil, err
		}
		pdfURL = result.URL
		pub.PdfURL = &pdfURL
	}

	if err := s.publicationRepo.Create(ctx, pub); err != nil {
		if pdfURL != "" {
			if delErr := s.media.Delete(ctx, pdfURL); delErr != nil {
				logger.Warn().Err(delErr).Str("url", pdfURL).Msg("Failed to remove orphaned publication pdf")
			}
		}
		return nil, err
	}
	return pub, nil
}

// UpdatePublication replaces the mutable fields and the whole author list.
// The stored PDF reference is untouched; UploadPdf manages it.
func (s *publicationServiceImpl) UpdatePublication(ctx context.Context, id int64, req *dto.UpdatePublicationRequest) (*models.Publication, error) {
	pub := publicationFromRequest(req.Title, req.Abstract, req.Authors, req.Type, req.Year,
		req.Journal, req.Volume, req.Issue, req.Pages, req.DOI, req.URL, req.Status)
	pub.ID = id

	updated, err := s.publicationRepo.Update(ctx, pub)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UploadPdf attaches or replaces the publication's PDF. The previous file is
// removed from the media host on a best-effort basis.
func (s *publicationServiceImpl) UploadPdf(ctx context.Context, id int64, pdfHeader *multipart.FileHeader) (*models.Publication, error) {
	result, err := s.uploads.Store(ctx, pdfHeader, mediastore.FolderPublications, s.pdfLimits)
	if err != nil {
		return nil, err
	}

	oldURL, err := s.publicationRepo.UpdatePdfURL(ctx, id, result.URL)
	if err != nil {
		if delErr := s.media.Delete(ctx, result.URL); delErr != nil {
			logger.Warn().Err(delErr).Str("url", result.URL).Msg("Failed to remove orphaned publication pdf")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}

	if oldURL != nil && *oldURL != "" {
		if err := s.media.Delete(ctx, *oldURL); err != nil {
			logger.Warn().Err(err).Str("url", *oldURL).Msg("Failed to remove previous publication pdf")
		}
	}
	return s.GetPublicationByID(ctx, id)
}

// DownloadPdf streams the stored PDF back from the media host.
func (s *publicationServiceImpl) DownloadPdf(ctx context.Context, id int64) (*FileDownload, error) {
	pub, err := s.GetPublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub.PdfURL == nil || *pub.PdfURL == "" {
		return nil, apperrors.ErrResourceNotFound
	}

	object, err := s.media.Fetch(ctx, *pub.PdfURL)
	if err != nil {
		logger.Error().Err(err).Int64("publicationID", id).Msg("Failed to fetch publication pdf from media host")
		return nil, apperrors.ErrMediaHostFailure
	}

	return &FileDownload{Object: object, Filename: downloadFilename(pub.Title, *pub.PdfURL)}, nil
}

// DeletePublication removes the row and its PDF. Deleting a missing
// publication succeeds.
func (s *publicationServiceImpl) DeletePublication(ctx context.Context, id int64) error {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.publicationRepo.Delete(ctx, id); err != nil {
		return err
	}

	if pub.PdfURL != nil && *pub.PdfURL != "" {
		if err := s.media.Delete(ctx, *pub.PdfURL); err != nil {
			logger.Warn().Err(err).Str("url", *pub.PdfURL).Msg("Failed to remove publication pdf from media host")
		}
	}
	return nil
}

func publicationFromRequest(title, abstract string, authors []dto.AuthorRequest, pubType string, year int,
	journal, volume, issue, pages, doi, url *string, status string) *models.Publication {
	pub := &models.Publication{
		Title:    title,
		Abstract: abstract,
		Type:     models.PublicationType(pubType),
		Year:     year,
		Journal:  journal,
		Volume:   volume,
		Issue:    issue,
		Pages:    pages,
		DOI:      doi,
		URL:      url,
		Status:   models.PublicationStatus(status),
	}
	pub.Authors = make([]models.Author, len(authors))
	for i, a := range authors {
		pub.Authors[i] = models.Author{
			Position:     i,
			Name:         a.Name,
			Institution:  a.Institution,
			IsMainAuthor: a.IsMainAuthor,
		}
	}
	return pub
}
