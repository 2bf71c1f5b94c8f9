package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders documents into CSV bytes. Tables are separated by an empty record and
// introduced by their caption when present.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the document.
func (e *CSVExporter) Render(doc Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for i, table := range doc.Tables {
		if i > 0 {
			if err := writer.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		if table.Caption != "" {
			if err := writer.Write([]string{table.Caption}); err != nil {
				return nil, fmt.Errorf("write csv caption: %w", err)
			}
		}
		if err := writer.Write(table.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range table.Rows {
			record := make([]string, len(table.Headers))
			for j := range table.Headers {
				record[j] = cell(row, j)
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
