package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"caseapi/internal/model"
	"caseapi/internal/repository"
)

// HistoryPostgres reads status_history rows.
type HistoryPostgres struct {
	db *sqlx.DB
}

func NewHistoryPostgres(db *sqlx.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.StatusHistoryRepository = (*HistoryPostgres)(nil)

func (r *HistoryPostgres) ListByCase(ctx context.Context, caseID int64) ([]model.StatusHistory, error) {
	const q = `
		SELECT id, case_id, old_status, new_status, changed_at, changed_by, notes
		FROM status_history
		WHERE case_id = $1
		ORDER BY changed_at DESC, id DESC
	`
	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, q, caseID); err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	out := make([]model.StatusHistory, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
