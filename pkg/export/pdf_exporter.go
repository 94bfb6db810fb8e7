package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 277.0 // A4 landscape minus margins
	lineHeight = 6.0
)

// PDFExporter renders tables as a landscape A4 document, repeating the header on every page.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{now: time.Now}
}

// Render creates the PDF document. Column widths follow the longest cell of each column.
func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if err := table.check("pdf"); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := e.now().UTC().Format("2006-01-02 15:04 MST")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s  |  Page %d", generated, pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.SetFont("Arial", "", 9)
	widths := columnWidths(pdf, table, tr)
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, column := range table.Columns {
			pdf.CellFormat(widths[i], lineHeight+1, tr(column), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if table.Title != "" {
			pdf.SetFont("Arial", "B", 13)
			pdf.CellFormat(0, 9, tr(table.Title), "", 1, "C", false, 0, "")
			pdf.Ln(2)
		}
		header()
	})

	pdf.AddPage()
	for _, row := range table.Rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], lineHeight, tr(cell), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths sizes columns by content and scales them to fill the page width.
func columnWidths(pdf *gofpdf.Fpdf, table Table, tr func(string) string) []float64 {
	widths := make([]float64, len(table.Columns))
	for i, column := range table.Columns {
		widths[i] = pdf.GetStringWidth(tr(column)) + 4
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if w := pdf.GetStringWidth(tr(cell)) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}
	var total float64
	for _, w := range widths {
		total += w
	}
	scale := pageWidth / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}
