package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// ExcelExporter renders documents as .xlsx workbooks using excelize.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Render(doc *Document, w io.Writer) error {
	if len(doc.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	f := excelize.NewFile()
	defer f.Close()

	row := 1
	if doc.Title != "" {
		f.SetCellValue(sheetName, cell(1, row), doc.Title)
		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14},
		})
		f.SetCellStyle(sheetName, cell(1, row), cell(1, row), titleStyle)
		row++
	}
	if doc.Subtitle != "" {
		f.SetCellValue(sheetName, cell(1, row), doc.Subtitle)
		row++
	}
	if !doc.GeneratedAt.IsZero() {
		f.SetCellValue(sheetName, cell(1, row), "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04"))
		row++
	}
	for _, line := range doc.Summary {
		f.SetCellValue(sheetName, cell(1, row), line)
		row++
	}
	if row > 1 {
		row++ // blank spacer before the table
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	for col, header := range doc.Headers {
		f.SetCellValue(sheetName, cell(col+1, headerRow), header)
		f.SetCellStyle(sheetName, cell(col+1, headerRow), cell(col+1, headerRow), headerStyle)
	}
	row++

	for _, dataRow := range doc.Rows {
		for col, value := range dataRow {
			f.SetCellValue(sheetName, cell(col+1, row), value)
		}
		row++
	}

	// Freeze everything above the first data row.
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cell(1, headerRow+1),
		ActivePane:  "bottomLeft",
	})

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string {
	return ".xlsx"
}

// cell converts 1-based column/row coordinates to an A1 reference.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
