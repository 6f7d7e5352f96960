package repository

import (
	"context"

	"caseapi/internal/model"
)

// DocumentRepository defines data access for case documents.
type DocumentRepository interface {
	// Create inserts the document and bumps the owning case's updated_at in one transaction.
	// A second main document for the case returns ErrDuplicateMainDocument.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// HasMain reports whether the case already has a main document.
	HasMain(ctx context.Context, caseID int64) (bool, error)

	// ListByCase returns the case's documents in upload order.
	ListByCase(ctx context.Context, caseID int64) ([]model.Document, error)
}

// StatusHistoryRepository reads the audit trail. Rows are written by CaseRepository.
type StatusHistoryRepository interface {
	// ListByCase returns history rows newest first.
	ListByCase(ctx context.Context, caseID int64) ([]model.StatusHistory, error)
}
