// Package mediastore wraps the remote media host used for photos, flyers and
// documents. Callers only see the upload/fetch/delete contract; the concrete
// backend is an OSS bucket.
package mediastore

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind is the media host's notion of a binary type. Misclassification makes
// the host reject or mis-serve the object, so it is derived from the content
// type rather than supplied by clients.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindRaw   Kind = "raw"
)

// Object key folders, one per upload surface.
const (
	FolderProfile      = "profile"
	FolderMaterials    = "materials"
	FolderPublications = "publications"
	FolderFlyers       = "flyers"
)

// Object describes a fetched remote object.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Store is the remote media host contract.
type Store interface {
	// Upload sends the object under key and returns its durable public URL.
	Upload(ctx context.Context, key string, r io.Reader, contentType string, kind Kind) (string, error)
	// Fetch retrieves the object addressed by a public URL previously
	// returned from Upload.
	Fetch(ctx context.Context, publicURL string) (*Object, error)
	// Delete removes the object addressed by a public URL. Deleting a
	// missing object is not an error.
	Delete(ctx context.Context, publicURL string) error
}

// ClassifyKind maps a MIME type to the media host resource kind.
func ClassifyKind(contentType string) Kind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo
	default:
		return KindRaw
	}
}

// DetectContentType sniffs the MIME type from the first bytes of head,
// falling back to the filename extension. Returns
// application/octet-stream when neither yields anything useful.
func DetectContentType(head []byte, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	if len(head) > 0 {
		sniffLen := len(head)
		if sniffLen > 512 {
			sniffLen = 512
		}
		detected := http.DetectContentType(head[:sniffLen])
		if ct == "" || ct == "application/octet-stream" {
			ct = detected
		}
	}

	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

// BuildObjectKey generates a collision-free object key under a logical
// folder, keeping the original extension.
func BuildObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	key := uuid.New().String() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}
