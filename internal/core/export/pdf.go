package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders documents as PDF using gofpdf.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (p *PDFExporter) Render(doc *Document, w io.Writer) error {
	if len(doc.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if doc.Landscape {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, doc.Title)
		pdf.Ln(12)
	}
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, doc.Subtitle, "", "", false)
		pdf.Ln(4)
	}
	if !doc.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04:05"))
		pdf.Ln(8)
	}
	if len(doc.Summary) > 0 {
		pdf.SetFont("Arial", "", 10)
		for _, line := range doc.Summary {
			pdf.Cell(0, 5, line)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()
	colWidth := (pageWidth - leftMargin - rightMargin) / float64(len(doc.Headers))

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for _, header := range doc.Headers {
			pdf.CellFormat(colWidth, 7, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 9)
	}
	drawHeader()

	for _, row := range doc.Rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		if pdf.GetY() > 270 { // near the bottom of an A4 page
			pdf.AddPage()
			drawHeader()
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) Extension() string {
	return ".pdf"
}
