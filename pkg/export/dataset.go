package export

import "fmt"

// Table is one tabular block of a report sheet.
type Table struct {
	Caption string
	Headers []string
	Rows    [][]string
}

// Document is a titled collection of tables rendered by the exporters.
type Document struct {
	Title    string
	Subtitle string
	Tables   []Table
}

func (d Document) validate() error {
	for i, table := range d.Tables {
		if len(table.Headers) == 0 {
			return fmt.Errorf("table %d requires at least one header", i)
		}
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
