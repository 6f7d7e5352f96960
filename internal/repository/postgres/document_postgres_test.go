package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

func TestDocumentPostgres_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	local := "instance/storage/CDC-PR-2026-00001/quote.pdf"

	newDoc := func() *model.Document {
		return &model.Document{
			CaseID:           1,
			DocType:          model.DocTypeMain,
			Filename:         "quote.pdf",
			OriginalFilename: "quote.pdf",
			FileSize:         2048,
			MimeType:         "application/pdf",
			LocalPath:        &local,
			UploadedAt:       now,
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO documents").
			WithArgs(1, "main", "quote.pdf", "quote.pdf", 2048, "application/pdf", nil, local, now, "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow(10, now))
		mock.ExpectExec(`UPDATE cases SET updated_at = \$1 WHERE id = \$2`).
			WithArgs(now, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		doc, err := repo.Create(ctx, newDoc())

		require.NoError(t, err)
		assert.Equal(t, int64(10), doc.ID)
		assert.Equal(t, "local", doc.Backend())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second main document", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uniq_documents_main_per_case"})
		mock.ExpectRollback()

		doc, err := repo.Create(ctx, newDoc())

		assert.Nil(t, doc)
		assert.ErrorIs(t, err, repository.ErrDuplicateMainDocument)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown case", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "documents_case_id_fkey"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, newDoc())

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_Reads(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM documents WHERE case_id = \$1 AND doc_type = 'main'\)`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	has, err := repo.HasMain(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	remote := "CDC-PR-Cases/CDC-PR-2026-00001/quote.pdf"
	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE case_id = \$1 ORDER BY uploaded_at ASC, id ASC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "case_id", "doc_type", "filename", "original_filename", "file_size", "mime_type",
			"remote_path", "local_path", "uploaded_at", "notes",
		}).AddRow(1, 1, "main", "quote.pdf", "Quote.pdf", 100, "application/pdf", remote, nil, time.Now(), nil))

	docs, err := repo.ListByCase(ctx, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, model.DocTypeMain, docs[0].DocType)
	assert.Equal(t, remote, docs[0].StoragePath())
	assert.Nil(t, docs[0].LocalPath)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryPostgres_ListByCase(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHistoryPostgres(db)

	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM status_history WHERE case_id = \$1 ORDER BY changed_at DESC, id DESC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "case_id", "old_status", "new_status", "changed_at", "changed_by", "notes"}).
			AddRow(2, 1, "Draft", "Submitted", t1.Add(time.Hour), nil, "sent for review").
			AddRow(1, 1, nil, "Draft", t1, nil, "Case created"))

	rows, err := repo.ListByCase(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].OldStatus)
	assert.Equal(t, model.StatusDraft, *rows[0].OldStatus)
	assert.Nil(t, rows[1].OldStatus)
	assert.Equal(t, "Case created", rows[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
