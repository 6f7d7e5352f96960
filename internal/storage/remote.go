package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Remote is the remote document service as seen by RemoteStore.
// Keys are slash-separated paths under the service's root.
type Remote interface {
	CreateFolder(ctx context.Context, key string) error
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	URL(key string) string
}

// RemoteStore writes to a Remote and falls back to its LocalStore on any remote failure.
// Fallbacks are logged as warnings and never surface to the caller.
type RemoteStore struct {
	remote    Remote
	local     *LocalStore
	root      string
	timeout   time.Duration
	log       *zap.Logger
	fallbacks *prometheus.CounterVec
}

var _ Backend = (*RemoteStore)(nil)

// Option configures a RemoteStore.
type Option func(*RemoteStore)

func WithLogger(l *zap.Logger) Option {
	return func(s *RemoteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTimeout bounds every remote call.
func WithTimeout(d time.Duration) Option {
	return func(s *RemoteStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithFallbackCounter counts fallbacks by operation.
func WithFallbackCounter(c *prometheus.CounterVec) Option {
	return func(s *RemoteStore) {
		s.fallbacks = c
	}
}

// NewFallbackCounter creates and registers storage_remote_fallbacks_total.
func NewFallbackCounter(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_remote_fallbacks_total",
			Help: "Remote storage operations that fell back to local storage.",
		},
		[]string{"operation"},
	)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewRemoteStore wraps remote with local fallback. rootFolder prefixes every key.
func NewRemoteStore(remote Remote, local *LocalStore, rootFolder string, opts ...Option) *RemoteStore {
	s := &RemoteStore{
		remote:  remote,
		local:   local,
		root:    rootFolder,
		timeout: 10 * time.Second,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RemoteStore) RemoteEnabled() bool {
	return true
}

// CreateCaseFolder creates {root}/{caseNumber} remotely, or locally when that fails.
func (s *RemoteStore) CreateCaseFolder(ctx context.Context, caseNumber string) (string, error) {
	if !validSegment(caseNumber) {
		return "", fmt.Errorf("%w: case number %q", ErrInvalidPath, caseNumber)
	}
	key := path.Join(s.root, caseNumber)

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.remote.CreateFolder(rctx, key)
	cancel()
	if err == nil {
		return key, nil
	}

	s.fallback("create_folder", caseNumber, err)
	return s.local.CreateCaseFolder(ctx, caseNumber)
}

// UploadFile uploads to {root}/{caseNumber}/{name}. On failure content is rewound
// and written to the local store instead.
func (s *RemoteStore) UploadFile(ctx context.Context, caseNumber, rawFilename string, content io.ReadSeeker, size int64, contentType string) (UploadResult, error) {
	name, err := SanitizeFilename(rawFilename)
	if err != nil {
		return UploadResult{}, err
	}
	if !validSegment(caseNumber) {
		return UploadResult{}, fmt.Errorf("%w: case number %q", ErrInvalidPath, caseNumber)
	}
	key := path.Join(s.root, caseNumber, name)

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	err = s.remote.Upload(rctx, key, content, size, contentType)
	cancel()
	if err == nil {
		return UploadResult{Filename: name, Path: key, Remote: true}, nil
	}

	s.fallback("upload", caseNumber, err)
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return UploadResult{}, fmt.Errorf("rewind upload for local fallback: %w", err)
	}
	p, err := s.local.write(ctx, caseNumber, name, content)
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Filename: name, Path: p}, nil
}

// FileURL returns the remote address of the file.
func (s *RemoteStore) FileURL(caseNumber, filename string) string {
	return s.remote.URL(path.Join(s.root, caseNumber, filename))
}

func (s *RemoteStore) fallback(op, caseNumber string, err error) {
	s.log.Warn("remote_storage_fallback",
		zap.String("operation", op),
		zap.String("case_number", caseNumber),
		zap.Error(err),
	)
	if s.fallbacks != nil {
		s.fallbacks.WithLabelValues(op).Inc()
	}
}
