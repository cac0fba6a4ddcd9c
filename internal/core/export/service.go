package export

import (
	"bytes"
	"fmt"
)

// Service is a facade over the format-specific exporters.
type Service struct {
	pdf   Exporter
	excel Exporter
}

func NewService() *Service {
	return &Service{
		pdf:   NewPDFExporter(),
		excel: NewExcelExporter(),
	}
}

// ToPDF renders the document to PDF bytes.
func (s *Service) ToPDF(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pdf.Render(doc, &buf); err != nil {
		return nil, fmt.Errorf("PDF export failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ToExcel renders the document to .xlsx bytes.
func (s *Service) ToExcel(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.excel.Render(doc, &buf); err != nil {
		return nil, fmt.Errorf("Excel export failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Render renders to the requested format, returning the bytes and MIME type.
func (s *Service) Render(doc *Document, format Format) ([]byte, string, error) {
	var exporter Exporter
	switch format {
	case FormatPDF:
		exporter = s.pdf
	case FormatExcel:
		exporter = s.excel
	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Render(doc, &buf); err != nil {
		return nil, "", fmt.Errorf("export failed: %w", err)
	}
	return buf.Bytes(), exporter.ContentType(), nil
}
