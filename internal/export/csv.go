package export

import (
	"encoding/csv"
	"io"

	"docbridge/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting batch results as CSV.
type Writer struct {
	csv     *csv.Writer
	columns []string
}

// NewWriter creates a Writer that writes CSV rows with the given columns to w.
func NewWriter(w io.Writer, columns []string) *Writer {
	return &Writer{csv: csv.NewWriter(w), columns: columns}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(w.columns)
}

// WriteRecords converts a batch of output records to CSV rows and writes
// them. Fields a record does not carry are left empty.
func (w *Writer) WriteRecords(records []domain.OutputRecord) error {
	for i := range records {
		row := make([]string, len(w.columns))
		for c, col := range w.columns {
			row[c] = cellString(records[i].JSON[col])
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}
