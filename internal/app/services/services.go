package services

import (
	"context"
	"mime/multipart"

	"github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/session"
	"github.com/ozank/lectern/internal/pkg/upload"
)

// uploader stores an incoming multipart file on the media host.
type uploader interface {
	Store(ctx context.Context, fileHeader *multipart.FileHeader, folder string, limits upload.Limits) (*upload.Result, error)
}

// objectRemover deletes a previously uploaded object by its public URL.
type objectRemover interface {
	Delete(ctx context.Context, publicURL string) error
}

// mediaFetcher additionally retrieves objects for proxy-streamed downloads.
type mediaFetcher interface {
	Fetch(ctx context.Context, publicURL string) (*mediastore.Object, error)
	Delete(ctx context.Context, publicURL string) error
}

// FileDownload bundles a remote object stream with the filename the
// response should carry.
type FileDownload struct {
	Object   *mediastore.Object
	Filename string
}

// UploadLimits groups the per-surface upload rules.
type UploadLimits struct {
	Photo    upload.Limits
	Material upload.Limits
	Pdf      upload.Limits
	Flyer    upload.Limits
}

// Services aggregates the business logic layer for dependency injection.
type Services struct {
	Auth        AuthService
	Profile     ProfileService
	Course      CourseService
	Material    MaterialService
	Publication PublicationService
	Talk        TalkService
}

// NewServices wires every service with its repositories and shared
// infrastructure.
func NewServices(
	repos *repositories.Repositories,
	sessions *session.Manager,
	uploads *upload.Pipeline,
	media mediastore.Store,
	limits UploadLimits,
) *Services {
	return &Services{
		Auth:        NewAuthService(repos.AccountRepository, sessions),
		Profile:     NewProfileService(repos.ProfileRepository, uploads, media, limits.Photo),
		Course:      NewCourseService(repos.CourseRepository),
		Material:    NewMaterialService(repos.MaterialRepository, repos.CourseRepository, uploads, media, limits.Material),
		Publication: NewPublicationService(repos.PublicationRepository, uploads, media, limits.Pdf),
		Talk:        NewTalkService(repos.TalkRepository, uploads, media, limits.Flyer),
	}
}
