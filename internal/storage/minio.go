package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"caseapi/internal/config"
)

// MinIORemote implements Remote on an S3-compatible document service.
// The site URL supplies the endpoint, username and password are the access keys.
// It is safe for concurrent use by multiple goroutines.
type MinIORemote struct {
	client  *minio.Client
	bucket  string
	siteURL string
}

var _ Remote = (*MinIORemote)(nil)

// NewMinIORemote creates the client without contacting the service.
func NewMinIORemote(cfg config.RemoteConfig) (*MinIORemote, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("remote credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("remote bucket is required")
	}
	u, err := url.Parse(cfg.SiteURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid remote site url %q", cfg.SiteURL)
	}

	cli, err := minio.New(u.Host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.Username, cfg.Password, ""),
		Secure:    u.Scheme == "https",
		Transport: otelhttp.NewTransport(http.DefaultTransport.(*http.Transport).Clone()),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIORemote{
		client:  cli,
		bucket:  cfg.Bucket,
		siteURL: strings.TrimRight(cfg.SiteURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket when it is missing.
func (m *MinIORemote) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// CreateFolder writes the zero-byte "{key}/" marker object.
func (m *MinIORemote) CreateFolder(ctx context.Context, key string) error {
	_, err := m.client.PutObject(ctx, m.bucket, strings.TrimSuffix(key, "/")+"/", bytes.NewReader(nil), 0,
		minio.PutObjectOptions{ContentType: "application/x-directory"})
	if err != nil {
		return fmt.Errorf("create remote folder: %w", err)
	}
	return nil
}

// Upload streams r to key. size may be -1 when unknown.
func (m *MinIORemote) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return fmt.Errorf("upload remote object: %w", err)
	}
	return nil
}

// URL joins the site URL and key.
func (m *MinIORemote) URL(key string) string {
	return m.siteURL + "/" + m.bucket + "/" + strings.TrimPrefix(key, "/")
}
