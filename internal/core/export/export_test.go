package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Title:       "Manifest MF-20250315-0001",
		Subtitle:    "Branch: Miami | Carrier: DHL",
		GeneratedAt: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
		Headers:     []string{"Tracking Number", "Status", "Weight (kg)"},
		Rows: [][]string{
			{"FD-20250310-00001", "ready_to_ship", "2.50"},
			{"FD-20250311-00002", "ready_to_ship", "1.20"},
		},
		Summary: []string{"Packages: 2", "Total weight: 3.70 kg"},
	}
}

func TestRenderPDF(t *testing.T) {
	svc := NewService()

	data, err := svc.ToPDF(sampleDocument())
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderExcel(t *testing.T) {
	svc := NewService()

	data, err := svc.ToExcel(sampleDocument())
	require.NoError(t, err)
	// xlsx workbooks are zip archives
	require.Greater(t, len(data), 2)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestRenderDispatchesByFormat(t *testing.T) {
	svc := NewService()

	data, contentType, err := svc.Render(sampleDocument(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, data)

	_, _, err = svc.Render(sampleDocument(), Format("csv"))
	assert.Error(t, err)
}

func TestRenderRequiresHeaders(t *testing.T) {
	svc := NewService()
	doc := sampleDocument()
	doc.Headers = nil

	_, err := svc.ToPDF(doc)
	assert.Error(t, err)

	_, err = svc.ToExcel(doc)
	assert.Error(t, err)
}

func TestPDFPaginatesLongTables(t *testing.T) {
	svc := NewService()
	doc := sampleDocument()
	doc.Rows = nil
	for i := 0; i < 200; i++ {
		doc.Rows = append(doc.Rows, []string{"FD-x", "in_transit", "1.00"})
	}

	data, err := svc.ToPDF(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
