// Package upload implements the multipart-to-media-host pipeline: buffer the
// incoming part to ephemeral local storage, forward it to the remote media
// host, and clean the local copy up on every exit path.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/pkg/mediastore"
)

// Limits constrains a single upload call.
type Limits struct {
	// MaxSize is the size ceiling in bytes. Zero means no ceiling.
	MaxSize int64
	// AllowedTypes is the MIME allow-list. Empty means any type.
	AllowedTypes []string
}

// Result describes a completed upload.
type Result struct {
	URL          string
	ContentType  string
	Kind         mediastore.Kind
	Size         int64
	OriginalName string
}

// Pipeline moves multipart file parts to the media store via a temp file.
type Pipeline struct {
	store   mediastore.Store
	tempDir string
}

// New creates a Pipeline. tempDir defaults to the OS temp directory.
func New(store mediastore.Store, tempDir string) *Pipeline {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Pipeline{store: store, tempDir: tempDir}
}

// Store runs the full pipeline for one file part and returns the durable
// media URL. The size ceiling and type allow-list are enforced before any
// remote call, so an oversized or mistyped upload never creates a remote
// object. The temp file is removed whether the upload succeeds or not.
func (p *Pipeline) Store(ctx context.Context, fh *multipart.FileHeader, folder string, limits Limits) (*Result, error) {
	if fh == nil {
		return nil, apperrors.ErrNoFileUploaded
	}
	if limits.MaxSize > 0 && fh.Size > limits.MaxSize {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file is %d bytes, limit is %d bytes", fh.Size, limits.MaxSize))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(p.tempDir, "lectern-upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// Cleanup is unconditional; a failed removal must not fail the upload.
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", tmpPath).Msg("Failed to remove temp upload file")
		}
	}()
	defer tmp.Close()

	size, err := io.Copy(tmp, src)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer uploaded file: %w", err)
	}
	if limits.MaxSize > 0 && size > limits.MaxSize {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file is %d bytes, limit is %d bytes", size, limits.MaxSize))
	}

	head := make([]byte, 512)
	n, err := tmp.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read back temp file: %w", err)
	}

	contentType := mediastore.DetectContentType(head[:n], fh.Filename)
	if !typeAllowed(contentType, limits.AllowedTypes) {
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFileType,
			fmt.Sprintf("file type %s is not allowed", contentType))
	}
	kind := mediastore.ClassifyKind(contentType)

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind temp file: %w", err)
	}

	key := mediastore.BuildObjectKey(folder, fh.Filename)
	url, err := p.store.Upload(ctx, key, tmp, contentType, kind)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Media host upload failed")
		return nil, apperrors.NewCustomError(apperrors.ErrMediaHostFailure, "failed to upload file to media host")
	}

	logger.Info().
		Str("filename", fh.Filename).
		Str("key", key).
		Str("contentType", contentType).
		Int64("size", size).
		Msg("File uploaded to media host")

	return &Result{
		URL:          url,
		ContentType:  contentType,
		Kind:         kind,
		Size:         size,
		OriginalName: fh.Filename,
	}, nil
}

func typeAllowed(contentType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, t := range allowed {
		if contentType == t {
			return true
		}
	}
	return false
}
