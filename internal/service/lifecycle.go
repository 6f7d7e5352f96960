package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"caseapi/internal/apperr"
	"caseapi/internal/model"
	"caseapi/internal/repository"
)

const initialHistoryNote = "Case created"

// TransitionResult reports the outcome of a status change.
type TransitionResult struct {
	Case      *model.Case
	OldStatus model.CaseStatus
	NewStatus model.CaseStatus
	Changed   bool
}

// Lifecycle moves cases between statuses. Any recognised status may follow any other.
type Lifecycle struct {
	repo repository.CaseRepository
	now  func() time.Time
}

func NewLifecycle(repo repository.CaseRepository) *Lifecycle {
	return &Lifecycle{repo: repo, now: time.Now}
}

// ParseStatus validates a client-supplied status. Matching is exact and case-sensitive.
func ParseStatus(raw string) (model.CaseStatus, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", apperr.Clone(apperr.ErrValidation, "Status is required")
	}
	status := model.CaseStatus(s)
	if !status.Valid() {
		return "", invalidStatusError()
	}
	return status, nil
}

func invalidStatusError() error {
	return apperr.Clone(apperr.ErrInvalidStatus, "Invalid status. Valid statuses: "+model.StatusNames())
}

// InitialHistory is the nil -> Draft row written together with a new case.
func InitialHistory(at time.Time) *model.StatusHistory {
	return &model.StatusHistory{
		OldStatus: nil,
		NewStatus: model.StatusDraft,
		ChangedAt: at,
		Notes:     initialHistoryNote,
	}
}

// Transition records a move to newStatus. Requesting the current status is not an
// error: nothing is written and Changed is false.
func (l *Lifecycle) Transition(ctx context.Context, caseID int64, newStatus, notes string, changedBy *string) (*TransitionResult, error) {
	status, err := ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	res, err := l.repo.UpdateStatus(ctx, repository.StatusChange{
		CaseID:    caseID,
		NewStatus: status,
		Notes:     strings.TrimSpace(notes),
		ChangedBy: changedBy,
		ChangedAt: l.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errCaseNotFound
		}
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to update case status")
	}

	return &TransitionResult{
		Case:      res.Case,
		OldStatus: res.OldStatus,
		NewStatus: status,
		Changed:   res.Changed,
	}, nil
}
