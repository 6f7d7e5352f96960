// Package report renders the procurement request spreadsheet and the PDF case summary.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFContentType  = "application/pdf"

	templateSheet = "請購單"
	blankTitle    = "請填寫案件名稱"
	itemRows      = 10
	headerRow     = 7
	dateLayout    = "2006-01-02"
)

var (
	columnWidths = map[string]float64{"A": 20, "B": 30, "C": 15, "D": 15, "E": 20}
	itemHeaders  = []string{"項次\nItem", "品名/規格\nDescription", "數量\nQuantity", "單位\nUnit", "備註\nRemarks"}
	thinBorder   = []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
)

// BlankCaseNumber is the placeholder printed on the blank template.
func BlankCaseNumber(prefix string) string {
	return prefix + "-XXXX-XXXXX"
}

// BuildBlankTemplate renders the template with a placeholder case number and title.
func BuildBlankTemplate(prefix string, created time.Time) ([]byte, error) {
	return BuildProcurementTemplate(BlankCaseNumber(prefix), blankTitle, created)
}

// BuildProcurementTemplate renders the procurement request form for one case as xlsx bytes.
func BuildProcurementTemplate(caseNumber, title string, created time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	b := &sheetBuilder{f: f, sheet: templateSheet}

	for col, width := range columnWidths {
		b.do(func() error { return f.SetColWidth(templateSheet, col, col, width) })
	}

	titleStyle := b.style(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	labelStyle := b.style(&excelize.Style{Font: &excelize.Font{Bold: true}})
	headerStyle := b.style(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder,
	})
	gridStyle := b.style(&excelize.Style{Border: thinBorder})
	numberStyle := b.style(&excelize.Style{
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	notesStyle := b.style(&excelize.Style{
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	b.set("A1", "請購單 Procurement Request", titleStyle)
	b.merge("A1", "E1")

	b.set("A3", "案件編號 Case Number:", labelStyle)
	b.set("B3", caseNumber, 0)
	b.set("A4", "案件名稱 Title:", labelStyle)
	b.set("B4", title, 0)
	b.merge("B4", "E4")
	b.set("A5", "建立日期 Created Date:", labelStyle)
	b.set("B5", created.Format(dateLayout), 0)
	b.do(func() error { return f.SetRowHeight(templateSheet, 6, 5) })

	for i, h := range itemHeaders {
		b.set(cell(i+1, headerRow), h, headerStyle)
	}
	for row := headerRow + 1; row <= headerRow+itemRows; row++ {
		b.set(cell(1, row), row-headerRow, numberStyle)
		b.do(func() error { return f.SetCellStyle(templateSheet, cell(2, row), cell(5, row), gridStyle) })
	}

	b.set("A19", "請購人 Requestor:", labelStyle)
	b.set("A20", "部門 Department:", labelStyle)
	b.set("A21", "聯絡電話 Contact:", labelStyle)

	b.set("A23", "備註說明 Notes:", labelStyle)
	b.merge("A23", "E23")
	b.do(func() error { return f.SetCellStyle(templateSheet, "A24", "E27", notesStyle) })
	b.merge("A24", "E27")

	if b.err != nil {
		return nil, fmt.Errorf("build procurement template: %w", b.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write procurement template: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetBuilder keeps the first error so layout code reads top to bottom.
type sheetBuilder struct {
	f     *excelize.File
	sheet string
	err   error
}

func (b *sheetBuilder) do(fn func() error) {
	if b.err == nil {
		b.err = fn()
	}
}

func (b *sheetBuilder) style(s *excelize.Style) int {
	var id int
	b.do(func() (err error) {
		id, err = b.f.NewStyle(s)
		return err
	})
	return id
}

func (b *sheetBuilder) set(axis string, value any, style int) {
	b.do(func() error { return b.f.SetCellValue(b.sheet, axis, value) })
	if style != 0 {
		b.do(func() error { return b.f.SetCellStyle(b.sheet, axis, axis, style) })
	}
}

func (b *sheetBuilder) merge(from, to string) {
	b.do(func() error { return b.f.MergeCell(b.sheet, from, to) })
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
