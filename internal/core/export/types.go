package export

import (
	"io"
	"time"
)

// Format identifies a rendered document type.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// Document is a generic tabular document to be rendered.
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time

	Headers []string
	Rows    [][]string

	// Free-form lines printed above the table (invoice totals, manifest meta).
	Summary []string

	Landscape bool
}

// Exporter renders a Document into a specific file format.
type Exporter interface {
	Render(doc *Document, w io.Writer) error
	ContentType() string
	Extension() string
}
