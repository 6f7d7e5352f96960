// Package storage stores case documents. A RemoteStore writes to the remote document
// service and falls back to a LocalStore whenever a remote call fails; a LocalStore
// writes under a directory tree with one folder per case number.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"caseapi/internal/config"
)

var (
	// ErrInvalidFilename is returned when a filename sanitizes to nothing.
	ErrInvalidFilename = errors.New("invalid filename")
	// ErrInvalidPath is returned for relative paths that escape the storage root.
	ErrInvalidPath = errors.New("invalid storage path")
)

// UploadResult describes where a file ended up.
// Remote is false when the file was written locally, including after a remote fallback.
type UploadResult struct {
	Filename string
	Path     string
	Remote   bool
}

// Backend is the storage abstraction the case service depends on.
type Backend interface {
	// RemoteEnabled reports whether remote credentials are configured.
	RemoteEnabled() bool
	// CreateCaseFolder ensures a folder for the case exists and returns its path.
	CreateCaseFolder(ctx context.Context, caseNumber string) (string, error)
	// UploadFile sanitizes rawFilename and stores content under the case folder.
	UploadFile(ctx context.Context, caseNumber, rawFilename string, content io.ReadSeeker, size int64, contentType string) (UploadResult, error)
	// FileURL returns the address a client uses to fetch the file.
	FileURL(caseNumber, filename string) string
}

// New builds the backend selected by cfg: a RemoteStore over MinIO when remote
// credentials are present, otherwise a LocalStore.
func New(cfg *config.AppConfig, log *zap.Logger, opts ...Option) (Backend, error) {
	local, err := NewLocalStore(cfg.Storage.LocalPath)
	if err != nil {
		return nil, err
	}
	if !cfg.Remote.Enabled() {
		return local, nil
	}

	if log == nil {
		log = zap.NewNop()
	}
	remote, err := NewMinIORemote(cfg.Remote)
	if err != nil {
		return nil, fmt.Errorf("init remote storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout())
	if err := remote.EnsureBucket(ctx); err != nil {
		log.Warn("remote_bucket_check_failed", zap.String("bucket", cfg.Remote.Bucket), zap.Error(err))
	}
	cancel()

	opts = append([]Option{WithLogger(log), WithTimeout(cfg.Remote.Timeout())}, opts...)
	return NewRemoteStore(remote, local, cfg.Remote.RootFolder, opts...), nil
}
