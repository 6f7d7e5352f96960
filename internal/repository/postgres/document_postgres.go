package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sqlx.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sqlx.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts the document row and touches the owning case.
// The partial unique index on main documents backs the one-main-per-case rule.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (_ *model.Document, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create document: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
		INSERT INTO documents (case_id, doc_type, filename, original_filename, file_size, mime_type,
		                       remote_path, local_path, uploaded_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, uploaded_at
	`
	out := *doc
	if err = tx.QueryRowxContext(ctx, q,
		doc.CaseID,
		string(doc.DocType),
		doc.Filename,
		doc.OriginalFilename,
		doc.FileSize,
		doc.MimeType,
		stringArg(doc.RemotePath),
		stringArg(doc.LocalPath),
		doc.UploadedAt,
		doc.Notes,
	).Scan(&out.ID, &out.UploadedAt); err != nil {
		switch {
		case violates(err, pgUniqueViolation, mainDocumentIndex):
			return nil, repository.ErrDuplicateMainDocument
		case violates(err, pgForeignKeyViolation, ""):
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}

	const touch = `UPDATE cases SET updated_at = $1 WHERE id = $2`
	if _, err = tx.ExecContext(ctx, touch, out.UploadedAt, doc.CaseID); err != nil {
		return nil, fmt.Errorf("touch case: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create document: %w", err)
	}
	return &out, nil
}

// HasMain reports whether the case already has a main document.
func (r *DocumentPostgres) HasMain(ctx context.Context, caseID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM documents WHERE case_id = $1 AND doc_type = 'main')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, caseID); err != nil {
		return false, fmt.Errorf("check main document: %w", err)
	}
	return exists, nil
}

// ListByCase returns the case's documents in upload order.
func (r *DocumentPostgres) ListByCase(ctx context.Context, caseID int64) ([]model.Document, error) {
	const q = `
		SELECT id, case_id, doc_type, filename, original_filename, file_size, mime_type,
		       remote_path, local_path, uploaded_at, notes
		FROM documents
		WHERE case_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`
	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, q, caseID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs := make([]model.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.toModel())
	}
	return docs, nil
}
