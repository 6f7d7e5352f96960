package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	repoMocks "caseapi/internal/repository/mocks"
)

func TestFormatCaseNumber(t *testing.T) {
	assert.Equal(t, "CDC-PR-2026-00001", FormatCaseNumber("CDC-PR", 2026, 1))
	assert.Equal(t, "CDC-PR-2026-99999", FormatCaseNumber("CDC-PR", 2026, 99999))
	assert.Equal(t, "CDC-PR-2026-100000", FormatCaseNumber("CDC-PR", 2026, 100000))
}

func TestCaseNumberAllocator_Next(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 7, 4, 15, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))
	yearStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("count plus one", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("CountCreatedSince", ctx, yearStart).Return(41, nil)
		repo.On("ExistsByNumber", ctx, "CDC-PR-2026-00042").Return(false, nil)

		a := NewCaseNumberAllocator(repo, "CDC-PR")
		a.now = func() time.Time { return fixed }

		got, err := a.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "CDC-PR-2026-00042", got)
		repo.AssertExpectations(t)
	})

	t.Run("skips taken numbers", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("CountCreatedSince", ctx, yearStart).Return(0, nil)
		repo.On("ExistsByNumber", ctx, "CDC-PR-2026-00001").Return(true, nil)
		repo.On("ExistsByNumber", ctx, "CDC-PR-2026-00002").Return(true, nil)
		repo.On("ExistsByNumber", ctx, "CDC-PR-2026-00003").Return(false, nil)

		a := NewCaseNumberAllocator(repo, "CDC-PR")
		a.now = func() time.Time { return fixed }

		got, err := a.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "CDC-PR-2026-00003", got)
	})

	t.Run("bounded probes", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("CountCreatedSince", ctx, yearStart).Return(0, nil)
		repo.On("ExistsByNumber", ctx, mock.Anything).Return(true, nil)

		a := NewCaseNumberAllocator(repo, "CDC-PR")
		a.now = func() time.Time { return fixed }

		_, err := a.Next(ctx)
		assert.ErrorIs(t, err, ErrCaseNumberExhausted)
		repo.AssertNumberOfCalls(t, "ExistsByNumber", maxAllocationProbes)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("CountCreatedSince", ctx, yearStart).Return(0, errors.New("connection refused"))

		a := NewCaseNumberAllocator(repo, "CDC-PR")
		a.now = func() time.Time { return fixed }

		_, err := a.Next(ctx)
		assert.ErrorContains(t, err, "connection refused")
		repo.AssertNotCalled(t, "ExistsByNumber", mock.Anything, mock.Anything)
	})
}
