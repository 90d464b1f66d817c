// Package csvtool post-processes collector CSV output: column removal and
// email-presence filtering.
package csvtool

import (
	"encoding/csv"
	"fmt"
	"io"
)

// DefaultDropColumn is the legacy column older collector runs emitted.
const DefaultDropColumn = "other_links"

// DropColumn copies CSV from r to w with the named column removed, located by
// header lookup. Rows shorter than the column index pass through unmodified
// (data recovery beats strictness); when the header lacks the column the
// input is copied through unchanged.
func DropColumn(r io.Reader, w io.Writer, column string) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cw := csv.NewWriter(w)

	header, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	idx := -1
	for i, h := range header {
		if h == column {
			idx = i
			break
		}
	}

	if idx < 0 {
		// Column absent: passthrough copy.
		if err := cw.Write(header); err != nil {
			return err
		}
		for {
			row, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read row: %w", err)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	if err := cw.Write(dropIndex(header, idx)); err != nil {
		return err
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if len(row) > idx {
			row = dropIndex(row, idx)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func dropIndex(row []string, idx int) []string {
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:idx]...)
	return append(out, row[idx+1:]...)
}
