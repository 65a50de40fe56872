// Package tabular parses header-keyed CSV text into ordered records.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ErrMissingColumn is returned by Require when a header lacks a column.
var ErrMissingColumn = errors.New("missing column")

// Record is a single row keyed by header column name.
type Record map[string]string

// Get returns the value of the named column, or "" if the row has none.
func (r Record) Get(column string) string {
	return r[column]
}

// Table is the parsed content of a CSV document.
type Table struct {
	Header  []string
	Records []Record
}

// Parse reads CSV text whose first row is a header. Blank lines are skipped.
// Rows shorter than the header get empty values for the missing columns;
// rows longer than the header are rejected.
func Parse(text string) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty document: header row required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{
		Header:  header,
		Records: make([]Record, 0),
	}

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read row: %w", readErr)
		}

		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(header))
		}

		record := make(Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = strings.TrimSpace(row[i])
			} else {
				record[column] = ""
			}
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// Require checks that every named column is present in the header.
func (t *Table) Require(columns ...string) error {
	present := make(map[string]struct{}, len(t.Header))
	for _, column := range t.Header {
		present[column] = struct{}{}
	}

	for _, column := range columns {
		if _, ok := present[column]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}
	return nil
}
