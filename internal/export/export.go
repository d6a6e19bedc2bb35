// Package export writes batch results to tabular and JSON files. Output
// records are free-form maps, so the table shape derives from the data:
// one column per distinct field across the batch.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"docbridge/internal/domain"
)

// Columns returns the sorted union of every record's JSON fields, so
// heterogeneous batches (results plus error and warning records) land in
// one table.
func Columns(records []domain.OutputRecord) []string {
	seen := make(map[string]bool)
	var cols []string
	for i := range records {
		for key := range records[i].JSON {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// cellString renders one field value for a table cell. Nested values fall
// back to their JSON encoding.
func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// JSON writes records as an indented JSON array.
func JSON(w io.Writer, records []domain.OutputRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteFile writes records to path in the format implied by its extension.
// Unknown extensions are an error rather than a silent default.
func WriteFile(path string, records []domain.OutputRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSVFile(out, records)
	case ".xlsx":
		return XLSX(out, records)
	case ".json":
		return JSON(out, records)
	default:
		return fmt.Errorf("unsupported output format %q; use .json, .csv, or .xlsx", filepath.Ext(path))
	}
}

func writeCSVFile(out io.Writer, records []domain.OutputRecord) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out, Columns(records))
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRecords(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
