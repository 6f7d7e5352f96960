package repository

import (
	"context"
	"time"

	"caseapi/internal/model"
)

// CaseFilter narrows case listings. Empty fields do not filter.
type CaseFilter struct {
	Status model.CaseStatus
	Search string
	PageQuery
}

// StatusChange describes a requested transition.
type StatusChange struct {
	CaseID    int64
	NewStatus model.CaseStatus
	Notes     string
	ChangedBy *string
	ChangedAt time.Time
}

// StatusChangeResult reports what UpdateStatus did.
// Changed is false when the case already had the requested status; no history row is written then.
type StatusChangeResult struct {
	Case      *model.Case
	OldStatus model.CaseStatus
	Changed   bool
}

// CaseRepository defines data access for cases.
type CaseRepository interface {
	// Create inserts the case and its initial history row in one transaction.
	// A case-number collision returns ErrDuplicateCaseNumber.
	Create(ctx context.Context, c *model.Case, initial *model.StatusHistory) (*model.Case, error)

	// FindByID returns a case with its document aggregates.
	FindByID(ctx context.Context, id int64) (*model.Case, error)

	// List returns a page of cases, newest first, and the total matching the filter.
	List(ctx context.Context, f CaseFilter) (*PageResult[model.Case], error)

	// CountCreatedSince counts cases created at or after since.
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)

	// ExistsByNumber reports whether a case already holds caseNumber.
	ExistsByNumber(ctx context.Context, caseNumber string) (bool, error)

	// UpdateStatus locks the case row, and when the status differs appends a history row
	// and updates current_status and updated_at, all in one transaction.
	UpdateStatus(ctx context.Context, change StatusChange) (*StatusChangeResult, error)

	// CountByStatus returns the number of cases per status.
	CountByStatus(ctx context.Context) (map[model.CaseStatus]int, error)
}
