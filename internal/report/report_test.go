package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"caseapi/internal/model"
)

func openSheet(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBuildProcurementTemplate(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	data, err := BuildProcurementTemplate("CDC-PR-2026-00001", "Office Chairs", created)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := openSheet(t, data)
	assert.Equal(t, []string{templateSheet}, f.GetSheetList())

	get := func(axis string) string {
		v, err := f.GetCellValue(templateSheet, axis)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "請購單 Procurement Request", get("A1"))
	assert.Equal(t, "CDC-PR-2026-00001", get("B3"))
	assert.Equal(t, "Office Chairs", get("B4"))
	assert.Equal(t, "2026-03-14", get("B5"))
	assert.Equal(t, "項次\nItem", get("A7"))
	assert.Equal(t, "備註\nRemarks", get("E7"))
	assert.Equal(t, "1", get("A8"))
	assert.Equal(t, "10", get("A17"))
	assert.Equal(t, "", get("A18"))
	assert.Equal(t, "請購人 Requestor:", get("A19"))
	assert.Equal(t, "備註說明 Notes:", get("A23"))

	merged, err := f.GetMergeCells(templateSheet)
	require.NoError(t, err)
	var ranges []string
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.ElementsMatch(t, []string{"A1:E1", "B4:E4", "A23:E23", "A24:E27"}, ranges)

	width, err := f.GetColWidth(templateSheet, "B")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
}

func TestBuildBlankTemplate(t *testing.T) {
	data, err := BuildBlankTemplate("CDC-PR", time.Now())
	require.NoError(t, err)

	f := openSheet(t, data)
	number, err := f.GetCellValue(templateSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "CDC-PR-XXXX-XXXXX", number)

	title, err := f.GetCellValue(templateSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, blankTitle, title)
}

func TestBuildCaseSummary(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	draft := model.StatusDraft
	reviewer := "buyer"
	local := "/srv/storage/CDC-PR-2026-00001/quote.pdf"

	detail := &model.CaseDetail{
		Case: model.Case{
			ID:            1,
			CaseNumber:    "CDC-PR-2026-00001",
			Title:         "Office Chairs",
			CurrentStatus: model.StatusSubmitted,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Documents: []model.Document{{
			DocType: model.DocTypeMain, OriginalFilename: "quote.pdf", FileSize: 1024, LocalPath: &local, UploadedAt: now,
		}},
		StatusHistory: []model.StatusHistory{
			{OldStatus: &draft, NewStatus: model.StatusSubmitted, ChangedAt: now, ChangedBy: &reviewer, Notes: "sent for review"},
			{NewStatus: model.StatusDraft, ChangedAt: now, Notes: "Case created"},
		},
	}

	data, err := BuildCaseSummary(detail, now)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = BuildCaseSummary(nil, now)
	assert.Error(t, err)

	empty, err := BuildCaseSummary(&model.CaseDetail{Case: model.Case{CaseNumber: "CDC-PR-2026-00002", Title: "辦公椅"}}, now)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}
