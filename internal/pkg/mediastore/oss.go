package mediastore

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/ozank/lectern/internal/pkg/logger"
)

// OSSConfig holds the three-part credential plus bucket addressing for the
// media host.
type OSSConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// OSSStore implements Store against an OSS bucket.
type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
}

// NewOSSStore builds a bucket client and verifies it is reachable.
func NewOSSStore(cfg OSSConfig) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("media store config incomplete: endpoint, access key, secret key and bucket are required")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create media host client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open media host bucket %s: %w", cfg.Bucket, err)
	}

	logger.Info().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("Media store client initialized")

	return &OSSStore{
		bucket:     bucket,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
	}, nil
}

// Upload stores the object and returns its public URL. Images are served
// inline; raw documents are marked as attachments so browsers download them.
func (s *OSSStore) Upload(ctx context.Context, key string, r io.Reader, contentType string, kind Kind) (string, error) {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if kind == KindImage || kind == KindVideo {
		opts = append(opts, oss.ContentDisposition("inline"))
	} else {
		opts = append(opts, oss.ContentDisposition("attachment"))
	}

	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("media host upload failed for key %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

// Fetch streams the object back for proxy downloads.
func (s *OSSStore) Fetch(ctx context.Context, publicURL string) (*Object, error) {
	key, err := keyFromPublicURL(publicURL)
	if err != nil {
		return nil, err
	}

	meta, err := s.bucket.GetObjectDetailedMeta(key)
	if err != nil {
		return nil, fmt.Errorf("media host meta lookup failed for key %s: %w", key, err)
	}

	body, err := s.bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("media host fetch failed for key %s: %w", key, err)
	}

	size, _ := strconv.ParseInt(meta.Get("Content-Length"), 10, 64)
	contentType := meta.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Body:        body,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Delete removes the object behind the public URL.
func (s *OSSStore) Delete(ctx context.Context, publicURL string) error {
	key, err := keyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("media host delete failed for key %s: %w", key, err)
	}
	return nil
}

func (s *OSSStore) publicURL(key string) string {
	end := s.endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}

// keyFromPublicURL strips scheme and host, leaving the object key.
func keyFromPublicURL(publicURL string) (string, error) {
	if publicURL == "" {
		return "", fmt.Errorf("empty media URL")
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract object key from url: %s", publicURL)
}
