package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"caseapi/internal/model"
)

const timeLayout = "2006-01-02 15:04"

// BuildCaseSummary renders a one-document PDF overview of a case: its fields,
// the documents table and the status history table.
func BuildCaseSummary(detail *model.CaseDetail, generatedAt time.Time) ([]byte, error) {
	if detail == nil {
		return nil, fmt.Errorf("case summary requires a case")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 15, 10)
	pdf.SetTitle(detail.CaseNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("Procurement Case "+detail.CaseNumber), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	info := [][2]string{
		{"Title", detail.Title},
		{"Status", string(detail.CurrentStatus)},
		{"Storage folder", detail.StorageFolderPath},
		{"Created", detail.CreatedAt.Format(timeLayout)},
		{"Updated", detail.UpdatedAt.Format(timeLayout)},
		{"Notes", detail.Notes},
	}
	for _, kv := range info {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, kv[0], "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 7, tr(kv[1]), "", "", false)
	}
	pdf.Ln(4)

	docRows := make([][]string, 0, len(detail.Documents))
	for _, d := range detail.Documents {
		docRows = append(docRows, []string{
			string(d.DocType),
			d.OriginalFilename,
			strconv.FormatInt(d.FileSize, 10),
			d.Backend(),
			d.UploadedAt.Format(timeLayout),
		})
	}
	table(pdf, tr, "Documents",
		[]string{"Type", "File", "Bytes", "Storage", "Uploaded"},
		[]float64{25, 75, 25, 25, 40},
		docRows)

	histRows := make([][]string, 0, len(detail.StatusHistory))
	for _, h := range detail.StatusHistory {
		from := "-"
		if h.OldStatus != nil {
			from = string(*h.OldStatus)
		}
		by := ""
		if h.ChangedBy != nil {
			by = *h.ChangedBy
		}
		histRows = append(histRows, []string{
			h.ChangedAt.Format(timeLayout), from, string(h.NewStatus), by, h.Notes,
		})
	}
	table(pdf, tr, "Status history",
		[]string{"Changed", "From", "To", "By", "Notes"},
		[]float64{35, 25, 25, 35, 70},
		histRows)

	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format(timeLayout), "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, title string, headers []string, widths []float64, rows [][]string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0x36, 0x60, 0x92)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 8)
	if len(rows) == 0 {
		pdf.CellFormat(sum(widths), 7, "None", "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, tr(clip(pdf, v, widths[i])), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// clip shortens v so it fits a cell of width w.
func clip(pdf *gofpdf.Fpdf, v string, w float64) string {
	r := []rune(v)
	for len(r) > 0 && pdf.GetStringWidth(string(r)) > w-2 {
		r = r[:len(r)-1]
	}
	return string(r)
}

func sum(xs []float64) float64 {
	var t float64
	for _, x := range xs {
		t += x
	}
	return t
}
