package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_cases",
		SQL: `CREATE TABLE IF NOT EXISTS cases (
  id                  BIGSERIAL   PRIMARY KEY,
  case_number         TEXT        NOT NULL,
  title               TEXT,
  current_status      TEXT        NOT NULL DEFAULT 'Draft'
                      CHECK (current_status IN ('Draft', 'Submitted', 'Approved', 'Closed', 'Rejected')),
  storage_folder_path TEXT,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  notes               TEXT,
  CONSTRAINT cases_case_number_key UNIQUE (case_number)
);`,
	},
	{
		Name: "create_index_cases_current_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_current_status ON cases (current_status);`,
	},
	{
		Name: "create_index_cases_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_created_at ON cases (created_at);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                BIGSERIAL   PRIMARY KEY,
  case_id           BIGINT      NOT NULL REFERENCES cases (id) ON DELETE CASCADE,
  doc_type          TEXT        NOT NULL CHECK (doc_type IN ('main', 'attachment')),
  filename          TEXT        NOT NULL,
  original_filename TEXT        NOT NULL,
  file_size         BIGINT      CHECK (file_size >= 0),
  mime_type         TEXT,
  remote_path       TEXT,
  local_path        TEXT,
  uploaded_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  notes             TEXT,
  CHECK ((remote_path IS NULL) <> (local_path IS NULL))
);`,
	},
	{
		Name: "create_index_documents_case_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_case_id ON documents (case_id);`,
	},
	{
		Name: "create_unique_index_documents_main",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_documents_main_per_case ON documents (case_id) WHERE doc_type = 'main';`,
	},
	{
		Name: "create_table_status_history",
		SQL: `CREATE TABLE IF NOT EXISTS status_history (
  id         BIGSERIAL   PRIMARY KEY,
  case_id    BIGINT      NOT NULL REFERENCES cases (id) ON DELETE CASCADE,
  old_status TEXT,
  new_status TEXT        NOT NULL,
  changed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  changed_by TEXT,
  notes      TEXT
);`,
	},
	{
		Name: "create_index_status_history_case_changed_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_status_history_case_changed_at ON status_history (case_id, changed_at);`,
	},
}

// DB is the subset of *sql.DB (and *sqlx.DB) the migrator needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EnsureMigrated checks if the 'cases' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db DB, log *zap.Logger, dbHost string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.cases') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
