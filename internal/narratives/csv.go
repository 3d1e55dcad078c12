package narratives

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// defaultTextColumn is the CSV column holding narrative text when the
// import command does not name one.
const defaultTextColumn = "narrative"

// parsedRow is one data row extracted from a CSV batch. Row is 1-based
// counting data rows only; the header row is row 0.
type parsedRow struct {
	Row  int
	Ref  string
	Text string
	Err  string
}

// parseBatch extracts narrative rows from raw CSV data. The first record
// is treated as a header and must contain the text column; the ref column
// is optional. Per-row problems are captured on the row rather than
// failing the batch, so a single bad row never discards the rest.
func parseBatch(data []byte, textColumn, refColumn string) ([]parsedRow, error) {
	if textColumn == "" {
		textColumn = defaultTextColumn
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrInvalidBatch, err)
	}

	textIdx := columnIndex(header, textColumn)
	if textIdx < 0 {
		return nil, fmt.Errorf("%w: missing column %q", ErrInvalidBatch, textColumn)
	}

	refIdx := -1
	if refColumn != "" {
		refIdx = columnIndex(header, refColumn)
		if refIdx < 0 {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidBatch, refColumn)
		}
	}

	var rows []parsedRow
	for n := 1; ; n++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		row := parsedRow{Row: n}

		if err != nil {
			row.Err = err.Error()
			rows = append(rows, row)
			continue
		}

		if textIdx >= len(record) || strings.TrimSpace(record[textIdx]) == "" {
			row.Err = ErrEmptyText.Error()
			rows = append(rows, row)
			continue
		}

		row.Text = strings.TrimSpace(record[textIdx])
		if refIdx >= 0 && refIdx < len(record) {
			row.Ref = strings.TrimSpace(record[refIdx])
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidBatch)
	}

	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
