package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin         = 10.0
	landscapeThreshold = 8
)

// PDFExporter renders documents into tabular PDFs. Wide tables (monthly sheets) switch the page to
// landscape and shrink the body font.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with a title block and one table per document table.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	orientation := "P"
	maxCols := 0
	for _, table := range doc.Tables {
		if len(table.Headers) > maxCols {
			maxCols = len(table.Headers)
		}
	}
	if maxCols > landscapeThreshold {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pageMargin, 15, pageMargin)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(doc.Title), "", 1, "C", false, 0, "")
	}
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, doc.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, table := range doc.Tables {
		if table.Caption != "" {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 8, table.Caption, "", 1, "L", false, 0, "")
		}
		fontSize := 9.0
		if len(table.Headers) > landscapeThreshold {
			fontSize = 6
		}
		colWidth := usable / float64(len(table.Headers))

		pdf.SetFont("Arial", "B", fontSize)
		for _, header := range table.Headers {
			pdf.CellFormat(colWidth, 7, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", fontSize)
		for _, row := range table.Rows {
			for i := range table.Headers {
				pdf.CellFormat(colWidth, 6, cell(row, i), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
