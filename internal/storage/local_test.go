package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "storage")

	s, err := NewLocalStore(root)
	require.NoError(t, err)
	assert.False(t, s.RemoteEnabled())

	t.Run("create case folder", func(t *testing.T) {
		dir, err := s.CreateCaseFolder(ctx, "CDC-PR-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "CDC-PR-2026-00001"), dir)
		assert.DirExists(t, dir)

		_, err = s.CreateCaseFolder(ctx, "../escape")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("upload writes sanitized file", func(t *testing.T) {
		res, err := s.UploadFile(ctx, "CDC-PR-2026-00001", "Office Quote.pdf", strings.NewReader("pdf-bytes"), 9, "application/pdf")
		require.NoError(t, err)

		assert.False(t, res.Remote)
		assert.Equal(t, "Office_Quote.pdf", res.Filename)
		assert.Equal(t, filepath.Join(root, "CDC-PR-2026-00001", "Office_Quote.pdf"), res.Path)

		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(data))

		entries, err := os.ReadDir(filepath.Dir(res.Path))
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".part"), "temp file left behind: %s", e.Name())
		}
	})

	t.Run("upload replaces existing name", func(t *testing.T) {
		_, err := s.UploadFile(ctx, "CDC-PR-2026-00002", "a.txt", strings.NewReader("one"), 3, "")
		require.NoError(t, err)
		res, err := s.UploadFile(ctx, "CDC-PR-2026-00002", "a.txt", strings.NewReader("two"), 3, "")
		require.NoError(t, err)

		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))
	})

	t.Run("upload rejects unusable filename", func(t *testing.T) {
		_, err := s.UploadFile(ctx, "CDC-PR-2026-00001", "..", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, ErrInvalidFilename)
	})

	t.Run("open", func(t *testing.T) {
		f, info, err := s.Open("CDC-PR-2026-00001/Office_Quote.pdf")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, int64(9), info.Size())

		_, _, err = s.Open("../secrets.txt")
		assert.ErrorIs(t, err, ErrInvalidPath)

		_, _, err = s.Open("CDC-PR-2026-00001/../../x")
		assert.ErrorIs(t, err, ErrInvalidPath)

		_, _, err = s.Open("CDC-PR-2026-00001")
		assert.True(t, IsNotFound(err))

		_, _, err = s.Open("CDC-PR-2026-00001/missing.pdf")
		assert.True(t, IsNotFound(err))
	})

	assert.Equal(t, "/storage/CDC-PR-2026-00001/quote.pdf", s.FileURL("CDC-PR-2026-00001", "quote.pdf"))
}
