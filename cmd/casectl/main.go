package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"caseapi/internal/config"
	"caseapi/internal/database"
	"caseapi/internal/database/migration"
	"caseapi/internal/logger"
	"caseapi/internal/model"
	"caseapi/internal/report"
	"caseapi/internal/repository/postgres"
	"caseapi/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(config.Load())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "casectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "casectl",
		Short: "Procurement case administration CLI",
		Long: `casectl runs maintenance tasks against the case database and renders
procurement request spreadsheets without starting the API server.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newMigrateCmd(cfg),
		newTemplateCmd(cfg),
		newNextNumberCmd(cfg),
		newStatsCmd(cfg),
	)
	return cmd
}

func newMigrateCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema when it does not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.NewPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			return migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host)
		},
	}
}

func newTemplateCmd(cfg *config.AppConfig) *cobra.Command {
	var (
		out        string
		caseNumber string
		title      string
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a procurement request spreadsheet",
		Long:  "Without --case-number the blank template is written, using CASE_NUMBER_PREFIX for the placeholder number.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if caseNumber == "" {
				data, err = report.BuildBlankTemplate(cfg.CaseNumberPrefix, time.Now())
			} else {
				data, err = report.BuildProcurementTemplate(caseNumber, title, time.Now())
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = "procurement_request_template.xlsx"
				if caseNumber != "" {
					out = caseNumber + "_procurement_request.xlsx"
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", filepath.Clean(out), len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to the download filename)")
	cmd.Flags().StringVar(&caseNumber, "case-number", "", "Case number to print on the form")
	cmd.Flags().StringVar(&title, "title", "", "Case title to print on the form")
	return cmd
}

func newNextNumberCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Print the case number the next created case would receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewSQLX(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			alloc := service.NewCaseNumberAllocator(postgres.NewCasePostgres(db), cfg.CaseNumberPrefix)
			number, err := alloc.Next(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
}

func newStatsCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print case counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewSQLX(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := postgres.NewCasePostgres(db).CountByStatus(cmd.Context())
			if err != nil {
				return err
			}
			var stats model.StatusCounts
			for status, n := range counts {
				stats.Add(status, n)
			}
			printStats(cmd.OutOrStdout(), &stats)
			return nil
		},
	}
}

func printStats(w io.Writer, s *model.StatusCounts) {
	fmt.Fprintf(w, "%-10s %d\n", "Total", s.Total)
	for _, row := range []struct {
		status model.CaseStatus
		n      int
	}{
		{model.StatusDraft, s.Draft},
		{model.StatusSubmitted, s.Submitted},
		{model.StatusApproved, s.Approved},
		{model.StatusClosed, s.Closed},
		{model.StatusRejected, s.Rejected},
	} {
		fmt.Fprintf(w, "%-10s %d\n", row.status, row.n)
	}
}
