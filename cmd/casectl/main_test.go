package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"caseapi/internal/config"
	"caseapi/internal/model"
)

func runCLI(t *testing.T, cfg *config.AppConfig, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestTemplateCommand(t *testing.T) {
	cfg := &config.AppConfig{CaseNumberPrefix: "CDC-PR"}

	t.Run("blank", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "blank.xlsx")
		msg := runCLI(t, cfg, "template", "--out", out)
		assert.True(t, strings.HasPrefix(msg, "wrote "))

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()

		v, err := f.GetCellValue("請購單", "B3")
		require.NoError(t, err)
		assert.Equal(t, "CDC-PR-XXXX-XXXXX", v)
	})

	t.Run("for a case", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "case.xlsx")
		runCLI(t, cfg, "template", "-o", out, "--case-number", "CDC-PR-2026-00042", "--title", "Office Chairs")

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()

		v, err := f.GetCellValue("請購單", "B3")
		require.NoError(t, err)
		assert.Equal(t, "CDC-PR-2026-00042", v)
		v, err = f.GetCellValue("請購單", "B4")
		require.NoError(t, err)
		assert.Equal(t, "Office Chairs", v)
	})

	t.Run("default filename", func(t *testing.T) {
		wd, wdErr := os.Getwd()
		require.NoError(t, wdErr)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })
		runCLI(t, cfg, "template", "--case-number", "CDC-PR-2026-00001")

		_, err := os.Stat("CDC-PR-2026-00001_procurement_request.xlsx")
		assert.NoError(t, err)
	})
}

func TestPrintStats(t *testing.T) {
	var s model.StatusCounts
	s.Add(model.StatusDraft, 2)
	s.Add(model.StatusClosed, 1)

	var buf bytes.Buffer
	printStats(&buf, &s)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Total      3", lines[0])
	assert.Equal(t, "Draft      2", lines[1])
	assert.Equal(t, "Closed     1", lines[4])
}
