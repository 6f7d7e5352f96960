package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"caseapi/internal/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	caseNumberConstraint = "cases_case_number_key"
	mainDocumentIndex    = "uniq_documents_main_per_case"
)

// caseRow mirrors a cases row plus the computed document aggregates.
type caseRow struct {
	ID                 int64          `db:"id"`
	CaseNumber         string         `db:"case_number"`
	Title              sql.NullString `db:"title"`
	CurrentStatus      string         `db:"current_status"`
	StorageFolderPath  sql.NullString `db:"storage_folder_path"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	Notes              sql.NullString `db:"notes"`
	DocumentCount      int            `db:"document_count"`
	MainDocumentExists bool           `db:"main_document_exists"`
}

func (r caseRow) toModel() *model.Case {
	return &model.Case{
		ID:                 r.ID,
		CaseNumber:         r.CaseNumber,
		Title:              r.Title.String,
		CurrentStatus:      model.CaseStatus(r.CurrentStatus),
		StorageFolderPath:  r.StorageFolderPath.String,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		Notes:              r.Notes.String,
		DocumentCount:      r.DocumentCount,
		MainDocumentExists: r.MainDocumentExists,
	}
}

type documentRow struct {
	ID               int64          `db:"id"`
	CaseID           int64          `db:"case_id"`
	DocType          string         `db:"doc_type"`
	Filename         string         `db:"filename"`
	OriginalFilename string         `db:"original_filename"`
	FileSize         sql.NullInt64  `db:"file_size"`
	MimeType         sql.NullString `db:"mime_type"`
	RemotePath       sql.NullString `db:"remote_path"`
	LocalPath        sql.NullString `db:"local_path"`
	UploadedAt       time.Time      `db:"uploaded_at"`
	Notes            sql.NullString `db:"notes"`
}

func (r documentRow) toModel() model.Document {
	return model.Document{
		ID:               r.ID,
		CaseID:           r.CaseID,
		DocType:          model.DocType(r.DocType),
		Filename:         r.Filename,
		OriginalFilename: r.OriginalFilename,
		FileSize:         r.FileSize.Int64,
		MimeType:         r.MimeType.String,
		RemotePath:       nullableString(r.RemotePath),
		LocalPath:        nullableString(r.LocalPath),
		UploadedAt:       r.UploadedAt,
		Notes:            r.Notes.String,
	}
}

type historyRow struct {
	ID        int64          `db:"id"`
	CaseID    int64          `db:"case_id"`
	OldStatus sql.NullString `db:"old_status"`
	NewStatus string         `db:"new_status"`
	ChangedAt time.Time      `db:"changed_at"`
	ChangedBy sql.NullString `db:"changed_by"`
	Notes     sql.NullString `db:"notes"`
}

func (r historyRow) toModel() model.StatusHistory {
	h := model.StatusHistory{
		ID:        r.ID,
		CaseID:    r.CaseID,
		NewStatus: model.CaseStatus(r.NewStatus),
		ChangedAt: r.ChangedAt,
		ChangedBy: nullableString(r.ChangedBy),
		Notes:     r.Notes.String,
	}
	if r.OldStatus.Valid {
		old := model.CaseStatus(r.OldStatus.String)
		h.OldStatus = &old
	}
	return h
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// statusArg converts an optional status into a driver value.
func statusArg(s *model.CaseStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

// stringArg converts an optional string into a driver value.
func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// violates reports whether err is a PostgreSQL error with the given SQLSTATE,
// and when constraint is non-empty, on that constraint.
func violates(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere, with wildcards in term escaped.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
