package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

// CasePostgres is a PostgreSQL implementation of repository.CaseRepository.
// It uses parameterized queries and contains no business logic.
type CasePostgres struct {
	db *sqlx.DB
}

// NewCasePostgres creates a new CasePostgres repository.
func NewCasePostgres(db *sqlx.DB) *CasePostgres {
	return &CasePostgres{db: db}
}

var _ repository.CaseRepository = (*CasePostgres)(nil)

const caseColumns = `c.id, c.case_number, c.title, c.current_status, c.storage_folder_path,
		c.created_at, c.updated_at, c.notes,
		(SELECT COUNT(*) FROM documents d WHERE d.case_id = c.id) AS document_count,
		EXISTS (SELECT 1 FROM documents d WHERE d.case_id = c.id AND d.doc_type = 'main') AS main_document_exists`

const insertHistory = `
		INSERT INTO status_history (case_id, old_status, new_status, changed_at, changed_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

// Create inserts the case row and its initial history row in a single transaction.
func (r *CasePostgres) Create(ctx context.Context, c *model.Case, initial *model.StatusHistory) (_ *model.Case, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create case: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
		INSERT INTO cases (case_number, title, current_status, storage_folder_path, created_at, updated_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, case_number, title, current_status, storage_folder_path, created_at, updated_at, notes
	`
	var row caseRow
	if err = tx.GetContext(ctx, &row, q,
		c.CaseNumber,
		c.Title,
		string(c.CurrentStatus),
		c.StorageFolderPath,
		c.CreatedAt,
		c.UpdatedAt,
		c.Notes,
	); err != nil {
		if violates(err, pgUniqueViolation, caseNumberConstraint) {
			return nil, repository.ErrDuplicateCaseNumber
		}
		return nil, fmt.Errorf("insert case: %w", err)
	}

	if _, err = tx.ExecContext(ctx, insertHistory,
		row.ID,
		statusArg(initial.OldStatus),
		string(initial.NewStatus),
		initial.ChangedAt,
		stringArg(initial.ChangedBy),
		initial.Notes,
	); err != nil {
		return nil, fmt.Errorf("insert initial history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create case: %w", err)
	}
	return row.toModel(), nil
}

// FindByID fetches a single case by its ID.
func (r *CasePostgres) FindByID(ctx context.Context, id int64) (*model.Case, error) {
	q := `SELECT ` + caseColumns + ` FROM cases c WHERE c.id = $1`
	var row caseRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("select case: %w", err)
	}
	return row.toModel(), nil
}

// List returns cases using LIMIT/OFFSET pagination and a total count.
func (r *CasePostgres) List(ctx context.Context, f repository.CaseFilter) (*repository.PageResult[model.Case], error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if f.Status != "" {
		args = append(args, string(f.Status))
		conditions = append(conditions, fmt.Sprintf("c.current_status = $%d", len(args)))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		args = append(args, containsPattern(term))
		conditions = append(conditions, fmt.Sprintf("(c.case_number ILIKE $%d OR c.title ILIKE $%d)", len(args), len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cases c`+where, args...); err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	listArgs := append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT %s FROM cases c%s ORDER BY c.created_at DESC, c.id DESC LIMIT $%d OFFSET $%d`,
		caseColumns, where, len(listArgs)-1, len(listArgs))

	var rows []caseRow
	if err := r.db.SelectContext(ctx, &rows, q, listArgs...); err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	items := make([]model.Case, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toModel())
	}
	return &repository.PageResult[model.Case]{Items: items, Total: total}, nil
}

// CountCreatedSince counts cases created at or after since.
func (r *CasePostgres) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM cases WHERE created_at >= $1`
	var n int
	if err := r.db.GetContext(ctx, &n, q, since); err != nil {
		return 0, fmt.Errorf("count cases since: %w", err)
	}
	return n, nil
}

// ExistsByNumber reports whether caseNumber is taken.
func (r *CasePostgres) ExistsByNumber(ctx context.Context, caseNumber string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM cases WHERE case_number = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, caseNumber); err != nil {
		return false, fmt.Errorf("check case number: %w", err)
	}
	return exists, nil
}

// UpdateStatus applies a transition under a row lock so concurrent transitions serialize.
func (r *CasePostgres) UpdateStatus(ctx context.Context, change repository.StatusChange) (_ *repository.StatusChangeResult, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status change: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	q := `SELECT ` + caseColumns + ` FROM cases c WHERE c.id = $1 FOR UPDATE OF c`
	var row caseRow
	if err = tx.GetContext(ctx, &row, q, change.CaseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("lock case: %w", err)
	}

	old := model.CaseStatus(row.CurrentStatus)
	if old == change.NewStatus {
		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit status check: %w", err)
		}
		return &repository.StatusChangeResult{Case: row.toModel(), OldStatus: old, Changed: false}, nil
	}

	if _, err = tx.ExecContext(ctx, insertHistory,
		row.ID,
		string(old),
		string(change.NewStatus),
		change.ChangedAt,
		stringArg(change.ChangedBy),
		change.Notes,
	); err != nil {
		return nil, fmt.Errorf("insert status history: %w", err)
	}

	const update = `UPDATE cases SET current_status = $1, updated_at = $2 WHERE id = $3`
	if _, err = tx.ExecContext(ctx, update, string(change.NewStatus), change.ChangedAt, row.ID); err != nil {
		return nil, fmt.Errorf("update case status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit status change: %w", err)
	}

	c := row.toModel()
	c.CurrentStatus = change.NewStatus
	c.UpdatedAt = change.ChangedAt
	return &repository.StatusChangeResult{Case: c, OldStatus: old, Changed: true}, nil
}

// CountByStatus groups cases by current status.
func (r *CasePostgres) CountByStatus(ctx context.Context) (map[model.CaseStatus]int, error) {
	const q = `SELECT current_status, COUNT(*) AS count FROM cases GROUP BY current_status`
	var rows []struct {
		Status string `db:"current_status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("count cases by status: %w", err)
	}
	out := make(map[model.CaseStatus]int, len(rows))
	for _, row := range rows {
		out[model.CaseStatus(row.Status)] = row.Count
	}
	return out, nil
}
