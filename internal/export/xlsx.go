package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docbridge/internal/domain"
)

const sheetName = "Records"

// XLSX writes records as a single-sheet workbook.
func XLSX(w io.Writer, records []domain.OutputRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	cols := Columns(records)
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, col)
	}

	for r := range records {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheetName, cell, cellString(records[r].JSON[col]))
		}
	}

	// Widen columns; extracted text and model replies run long.
	if len(cols) > 0 {
		last, _ := excelize.ColumnNumberToName(len(cols))
		_ = f.SetColWidth(sheetName, "A", last, 40)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
