package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore persists files on disk under a root directory, one folder per case.
type LocalStore struct {
	root string
}

var _ Backend = (*LocalStore)(nil)

// NewLocalStore ensures the root directory exists and returns a handle.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "./instance/storage"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Root returns the configured root directory.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) RemoteEnabled() bool {
	return false
}

// CreateCaseFolder creates {root}/{caseNumber} and returns that path.
func (s *LocalStore) CreateCaseFolder(_ context.Context, caseNumber string) (string, error) {
	if !validSegment(caseNumber) {
		return "", fmt.Errorf("%w: case number %q", ErrInvalidPath, caseNumber)
	}
	dir := filepath.Join(s.root, caseNumber)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create case folder: %w", err)
	}
	return dir, nil
}

// UploadFile writes content to {root}/{caseNumber}/{sanitized name}.
func (s *LocalStore) UploadFile(ctx context.Context, caseNumber, rawFilename string, content io.ReadSeeker, _ int64, _ string) (UploadResult, error) {
	name, err := SanitizeFilename(rawFilename)
	if err != nil {
		return UploadResult{}, err
	}
	p, err := s.write(ctx, caseNumber, name, content)
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Filename: name, Path: p}, nil
}

// write streams r into a temp file inside the case folder and renames it into place,
// so a failed write never leaves a partial file under the final name.
func (s *LocalStore) write(ctx context.Context, caseNumber, name string, r io.Reader) (string, error) {
	dir, err := s.CreateCaseFolder(ctx, caseNumber)
	if err != nil {
		return "", err
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".part")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move upload into place: %w", err)
	}
	return final, nil
}

// FileURL returns the /storage route serving the file.
func (s *LocalStore) FileURL(caseNumber, filename string) string {
	return LocalURL(caseNumber, filename)
}

// Open returns a read-only handle for a file addressed relative to the root.
// Paths containing ".." segments are rejected with ErrInvalidPath; directories
// are reported as os.ErrNotExist.
func (s *LocalStore) Open(relPath string) (*os.File, os.FileInfo, error) {
	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "/")
	if relPath == "" {
		return nil, nil, ErrInvalidPath
	}
	for _, seg := range strings.Split(relPath, "/") {
		if seg == ".." {
			return nil, nil, ErrInvalidPath
		}
	}

	full := filepath.Join(s.root, filepath.FromSlash(path.Clean(relPath)))
	f, err := os.Open(full)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("open %s: %w", relPath, os.ErrNotExist)
	}
	return f, info, nil
}

// LocalURL is the /storage route for a locally stored file.
func LocalURL(caseNumber, filename string) string {
	return "/storage/" + caseNumber + "/" + filename
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// IsNotFound reports whether err means the requested file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
