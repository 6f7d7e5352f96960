package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"caseapi/internal/apperr"
	"caseapi/internal/model"
	"caseapi/internal/repository"
	repoMocks "caseapi/internal/repository/mocks"
)

func TestParseStatus(t *testing.T) {
	for _, s := range model.Statuses {
		got, err := ParseStatus(" " + string(s) + " ")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Status is required", apperr.FromError(err).Message)

	_, err = ParseStatus("approved")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
	assert.Equal(t, "Invalid status. Valid statuses: Draft, Submitted, Approved, Closed, Rejected", apperr.FromError(err).Message)
}

func TestInitialHistory(t *testing.T) {
	at := time.Now()
	h := InitialHistory(at)
	assert.Nil(t, h.OldStatus)
	assert.Equal(t, model.StatusDraft, h.NewStatus)
	assert.Equal(t, "Case created", h.Notes)
	assert.Equal(t, at, h.ChangedAt)
}

func TestLifecycle_Transition(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	by := "approver"

	t.Run("changed", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("UpdateStatus", ctx, repository.StatusChange{
			CaseID: 3, NewStatus: model.StatusApproved, Notes: "ok", ChangedBy: &by, ChangedAt: at,
		}).Return(&repository.StatusChangeResult{
			Case:      &model.Case{ID: 3, CurrentStatus: model.StatusApproved},
			OldStatus: model.StatusSubmitted,
			Changed:   true,
		}, nil)

		l := NewLifecycle(repo)
		l.now = func() time.Time { return at }

		res, err := l.Transition(ctx, 3, "Approved", " ok ", &by)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, model.StatusSubmitted, res.OldStatus)
		assert.Equal(t, model.StatusApproved, res.NewStatus)
		repo.AssertExpectations(t)
	})

	t.Run("invalid status never reaches repository", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		l := NewLifecycle(repo)

		_, err := l.Transition(ctx, 3, "Archived", "", nil)
		assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("missing case", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("UpdateStatus", ctx, mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := NewLifecycle(repo).Transition(ctx, 9, "Closed", "", nil)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(repoMocks.MockCaseRepository)
		repo.On("UpdateStatus", ctx, mock.Anything).Return(nil, errors.New("deadlock detected"))

		_, err := NewLifecycle(repo).Transition(ctx, 9, "Closed", "", nil)
		assert.ErrorIs(t, err, apperr.ErrInternal)
	})
}
